package backup

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	bolt "go.etcd.io/bbolt"
)

const bucket = "wallet_backups"

// ErrNotExists is an error for a wallet without backups in the journal.
var ErrNotExists = errors.New("no backup journaled")

// Entry is the journal record of the latest backup of a wallet.
type Entry struct {
	WalletID string    `json:"walletId"`
	File     string    `json:"file"`
	Time     time.Time `json:"time"`
	Error    string    `json:"error,omitempty"`
}

// Journal keeps the latest backup of every wallet in a bbolt file.
type Journal struct {
	db *bolt.DB
}

// OpenJournal opens or creates the journal file.
func OpenJournal(filename string) (j *Journal, err error) {
	defer err2.Handle(&err, "open backup journal")

	db := try.To1(bolt.Open(filename, 0600, &bolt.Options{Timeout: time.Second}))
	defer err2.Handle(&err, func(err error) error {
		db.Close()
		return err
	})
	try.To(db.Update(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err, "create buckets")

		try.To1(tx.CreateBucketIfNotExists([]byte(bucket)))
		return nil
	}))
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Put stores the entry as the latest backup of its wallet.
func (j *Journal) Put(e Entry) (err error) {
	defer err2.Handle(&err, "journal %s", e.WalletID)

	data := try.To1(json.Marshal(e))
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(e.WalletID), data)
	})
}

// Get returns the latest backup entry of the wallet.
func (j *Journal) Get(walletID string) (e Entry, err error) {
	defer err2.Handle(&err)

	try.To(j.db.View(func(tx *bolt.Tx) error {
		d := tx.Bucket([]byte(bucket)).Get([]byte(walletID))
		if d == nil {
			return ErrNotExists
		}
		return json.Unmarshal(d, &e)
	}))
	return e, nil
}

// All returns every journaled entry.
func (j *Journal) All() (entries []Entry, err error) {
	defer err2.Handle(&err)

	try.To(j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		})
	}))
	return entries, nil
}
