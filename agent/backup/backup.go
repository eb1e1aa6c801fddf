/*
Package backup exports the open wallets of the bridge to the backup folder on
a daily schedule. The latest backup of every wallet is journaled.
*/
package backup

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
)

// Exporter is the part of the bridge the backups need.
type Exporter interface {
	OpenWallets() map[string]int
	ExportWallet(wh int, exportConfig string) *async.Promise
}

// Backup is the scheduled wallet backup.
type Backup struct {
	DateTimeInName bool

	exp     Exporter
	path    string
	key     string
	journal *Journal

	cron *gocron.Scheduler
	lk   sync.Mutex // one run at a time
}

// New creates the backup of the exporter's wallets. The journal is optional.
func New(exp Exporter, path, key string, journal *Journal) *Backup {
	return &Backup{
		DateTimeInName: true,
		exp:            exp,
		path:           path,
		key:            key,
		journal:        journal,
		cron:           gocron.NewScheduler(time.Now().Location()),
	}
}

// ValidateTime checks the HH:MM or HH:MM:SS time of the day.
func ValidateTime(t string) error {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, t); err == nil {
			return nil
		}
	}
	return fmt.Errorf("invalid time of day: %q", t)
}

// Start schedules the daily backup at the time of the day.
func (b *Backup) Start(at string) error {
	if err := ValidateTime(at); err != nil {
		return err
	}
	glog.V(1).Infoln("wallet backup time:", at)
	if _, err := b.cron.Every(1).Day().At(at).Do(b.Run); err != nil {
		return fmt.Errorf("schedule wallet backup: %w", err)
	}
	b.cron.StartAsync()
	return nil
}

func (b *Backup) Stop() {
	b.cron.Stop()
}

// ExportConfig builds the export config of the wallet. The key is used as a
// raw export key.
func ExportConfig(path, key string) string {
	cfg := struct {
		Path                string `json:"path"`
		Key                 string `json:"key"`
		KeyDerivationMethod string `json:"key_derivation_method"`
	}{path, key, "RAW"}
	data, _ := json.Marshal(cfg)
	return string(data)
}

// Run exports every open wallet once and returns the count of the
// successful exports. Failures are logged and journaled.
func (b *Backup) Run() int {
	b.lk.Lock()
	defer b.lk.Unlock()

	wallets := b.exp.OpenWallets()
	glog.V(1).Infof("wallet backup of %d wallets", len(wallets))

	ok := 0
	for id, h := range wallets {
		file := filepath.Join(b.path, b.backupName(id))
		_, err := b.exp.ExportWallet(h, ExportConfig(file, b.key)).Await()
		if sdkerr.IsKind(err, sdkerr.NotFound) {
			glog.V(1).Infof("wallet %s closed before backup", id)
			continue
		}

		e := Entry{WalletID: id, File: file, Time: time.Now()}
		if err != nil {
			glog.Error("error in backup:", err)
			e.Error = err.Error()
		} else {
			glog.V(1).Infoln("successful wallet backup:", id)
			ok++
		}
		if b.journal != nil {
			if err := b.journal.Put(e); err != nil {
				glog.Error(err)
			}
		}
	}
	return ok
}

func (b *Backup) backupName(baseName string) string {
	if !b.DateTimeInName {
		return baseName
	}
	tsStr := time.Now().Format(time.RFC3339)
	name := tsStr + "_" + baseName
	glog.V(3).Infoln("backup name:", name)
	return name
}
