package bridge

import (
	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

func (b *Bridge) AddWalletRecord(wh int, kind, id, value, tagsJSON string) *async.Promise {
	return b.call("addWalletRecord", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Records.Add(w, kind, id, value, tagsJSON)).Err())
	})
}

func (b *Bridge) UpdateWalletRecordValue(wh int, kind, id, value string) *async.Promise {
	return b.call("updateWalletRecordValue", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Records.UpdateValue(w, kind, id, value)).Err())
	})
}

func (b *Bridge) UpdateWalletRecordTags(wh int, kind, id, tagsJSON string) *async.Promise {
	return b.call("updateWalletRecordTags", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Records.UpdateTags(w, kind, id, tagsJSON)).Err())
	})
}

func (b *Bridge) AddWalletRecordTags(wh int, kind, id, tagsJSON string) *async.Promise {
	return b.call("addWalletRecordTags", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Records.AddTags(w, kind, id, tagsJSON)).Err())
	})
}

func (b *Bridge) DeleteWalletRecordTags(wh int, kind, id, tagNamesJSON string) *async.Promise {
	return b.call("deleteWalletRecordTags", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Records.DeleteTags(w, kind, id, tagNamesJSON)).Err())
	})
}

func (b *Bridge) DeleteWalletRecord(wh int, kind, id string) *async.Promise {
	return b.call("deleteWalletRecord", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Records.Delete(w, kind, id)).Err())
	})
}

func (b *Bridge) GetWalletRecord(wh int, kind, id, optionsJSON string) *async.Promise {
	return b.call("getWalletRecord", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return b.future(b.sdk.Records.Get(w, kind, id, optionsJSON)).Str1()
	})
}

// OpenWalletSearch opens a record search in the wallet. The search handles
// are counted from one.
func (b *Bridge) OpenWalletSearch(wh int, kind, queryJSON, optionsJSON string) *async.Promise {
	return b.call("openWalletSearch", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		native := try.To1(b.future(b.sdk.Records.OpenSearch(w, kind, queryJSON, optionsJSON)).Int())
		h := b.searches.Insert(&search{native: native})
		glog.V(3).Infof("wallet search (%d) opened", h)
		return h, nil
	})
}

func (b *Bridge) FetchWalletSearchNextRecords(wh, sh, count int) *async.Promise {
	return b.call("fetchWalletSearchNextRecords", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		if count <= 0 {
			return nil, sdkerr.Bridgef(sdkerr.InvalidArgument, "illegal count %d", count)
		}
		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		s, releaseSearch := try.To2(b.borrowSearch(sh))
		defer releaseSearch()
		return b.future(b.sdk.Records.FetchNext(w, s, count)).Str1()
	})
}

func (b *Bridge) CloseWalletSearch(sh int) *async.Promise {
	return b.call("closeWalletSearch", b.sdk.Records, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		s, e := b.searches.Remove(sh)
		if e != nil {
			return nil, notFound(e)
		}
		try.To(b.future(b.sdk.Records.CloseSearch(s.native)).Err())
		glog.V(3).Infof("wallet search (%d) closed", sh)
		return nil, nil
	})
}
