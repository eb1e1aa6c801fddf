package bridge

import (
	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// DIDResult is the outcome of DID creation.
type DIDResult struct {
	DID    string `json:"did"`
	Verkey string `json:"verkey"`
}

func (b *Bridge) CreateAndStoreMyDid(wh int, didJSON string) *async.Promise {
	return b.call("createAndStoreMyDid", b.sdk.DIDs, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		did, verkey, _ := try.To3(b.future(b.sdk.DIDs.CreateAndStore(w, didJSON)).Strs())
		return DIDResult{DID: did, Verkey: verkey}, nil
	})
}

// KeyForDid resolves the verkey of the DID from the wallet or from the
// ledger of the pool.
func (b *Bridge) KeyForDid(ph, wh int, did string) *async.Promise {
	return b.call("keyForDid", b.sdk.DIDs, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		p, releasePool := try.To2(b.borrowPool(ph))
		defer releasePool()
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.DIDs.Key(p, w, did)).Str1()
	})
}

func (b *Bridge) KeyForLocalDid(wh int, did string) *async.Promise {
	return b.call("keyForLocalDid", b.sdk.DIDs, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.DIDs.LocalKey(w, did)).Str1()
	})
}

func (b *Bridge) StoreTheirDid(wh int, identityJSON string) *async.Promise {
	return b.call("storeTheirDid", b.sdk.DIDs, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.DIDs.StoreTheir(w, identityJSON)).Err())
	})
}

func (b *Bridge) SetDidMetadata(wh int, did, metadata string) *async.Promise {
	return b.call("setDidMetadata", b.sdk.DIDs, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.DIDs.SetMeta(w, did, metadata)).Err())
	})
}

func (b *Bridge) GetDidMetadata(wh int, did string) *async.Promise {
	return b.call("getDidMetadata", b.sdk.DIDs, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.DIDs.Meta(w, did)).Str1()
	})
}

func (b *Bridge) ListMyDidsWithMeta(wh int) *async.Promise {
	return b.call("listMyDidsWithMeta", b.sdk.DIDs, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.DIDs.ListWithMeta(w)).Str1()
	})
}
