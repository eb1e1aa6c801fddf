package bridge

import (
	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

func (b *Bridge) CreatePairwise(wh int, theirDid, myDid, metadata string) *async.Promise {
	return b.call("createPairwise", b.sdk.Pairwise, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Pairwise.Create(w, theirDid, myDid, metadata)).Err())
	})
}

// GetPairwise returns the pairwise JSON of their DID: my DID and metadata.
func (b *Bridge) GetPairwise(wh int, theirDid string) *async.Promise {
	return b.call("getPairwise", b.sdk.Pairwise, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Pairwise.Get(w, theirDid)).Str1()
	})
}

func (b *Bridge) ListPairwise(wh int) *async.Promise {
	return b.call("listPairwise", b.sdk.Pairwise, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Pairwise.List(w)).Str1()
	})
}

func (b *Bridge) SetPairwiseMetadata(wh int, theirDid, metadata string) *async.Promise {
	return b.call("setPairwiseMetadata", b.sdk.Pairwise, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Pairwise.SetMeta(w, theirDid, metadata)).Err())
	})
}
