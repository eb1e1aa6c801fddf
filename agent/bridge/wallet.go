package bridge

import (
	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

func (b *Bridge) CreateWallet(config, credentials string) *async.Promise {
	return b.call("createWallet", b.sdk.Wallets, func() (any, error) {
		return nothing(b.future(b.sdk.Wallets.Create(config, credentials)).Err())
	})
}

// OpenWallet opens the wallet of the config or returns the handle of the
// wallet if it's already open. The config must have the wallet id.
func (b *Bridge) OpenWallet(config, credentials string) *async.Promise {
	return b.call("openWallet", b.sdk.Wallets, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		id := try.To1(walletID(config))
		h, reused := try.To2(b.wallets.OpenOrReuse(id, func() (*wallet, error) {
			native, err := b.future(b.sdk.Wallets.Open(config, credentials)).Int()
			if err != nil {
				return nil, err
			}
			return &wallet{native: native, id: id}, nil
		}))
		if reused {
			glog.V(1).Infof("wallet %s already open (%d)", id, h)
		} else {
			glog.V(1).Infof("wallet %s opened (%d)", id, h)
		}
		return h, nil
	})
}

// CloseWallet closes the wallet and frees its handle. The handle is invalid
// after the call even if the native close fails.
func (b *Bridge) CloseWallet(wh int) *async.Promise {
	return b.call("closeWallet", b.sdk.Wallets, func() (_ any, err error) {
		defer err2.Handle(&err, nil, func(err error) error {
			glog.Errorf("close wallet (%d): %v", wh, err)
			return err
		})

		w, e := b.wallets.Release(wh)
		if e != nil {
			return nil, notFound(e)
		}
		try.To(b.future(b.sdk.Wallets.Close(w.native)).Err())
		glog.V(1).Infof("wallet %s closed (%d)", w.id, wh)
		return nil, nil
	})
}

func (b *Bridge) DeleteWallet(config, credentials string) *async.Promise {
	return b.call("deleteWallet", b.sdk.Wallets, func() (any, error) {
		return nothing(b.future(b.sdk.Wallets.Delete(config, credentials)).Err())
	})
}

func (b *Bridge) ExportWallet(wh int, exportConfig string) *async.Promise {
	return b.call("exportWallet", b.sdk.Wallets, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		w, release := try.To2(b.borrowWallet(wh))
		defer release()
		return nothing(b.future(b.sdk.Wallets.Export(w, exportConfig)).Err())
	})
}

func (b *Bridge) ImportWallet(config, credentials, importConfig string) *async.Promise {
	return b.call("importWallet", b.sdk.Wallets, func() (any, error) {
		return nothing(b.future(b.sdk.Wallets.Import(config, credentials, importConfig)).Err())
	})
}

func (b *Bridge) GenerateWalletKey(config string) *async.Promise {
	return b.call("generateWalletKey", b.sdk.Wallets, func() (any, error) {
		return b.future(b.sdk.Wallets.GenerateKey(config)).Str1()
	})
}
