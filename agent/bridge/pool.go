package bridge

import (
	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

func (b *Bridge) SetProtocolVersion(version int) *async.Promise {
	return b.call("setProtocolVersion", b.sdk.Pools, func() (any, error) {
		if version <= 0 {
			return nil, sdkerr.Bridgef(sdkerr.InvalidArgument,
				"illegal protocol version %d", version)
		}
		return nothing(b.future(b.sdk.Pools.SetProtocolVersion(uint64(version))).Err())
	})
}

func (b *Bridge) CreatePoolLedgerConfig(configName, poolConfig string) *async.Promise {
	return b.call("createPoolLedgerConfig", b.sdk.Pools, func() (any, error) {
		return nothing(b.future(b.sdk.Pools.CreateConfig(configName, poolConfig)).Err())
	})
}

// OpenPoolLedger opens the pool ledger of the config name or returns the
// handle of the pool if it's already open.
func (b *Bridge) OpenPoolLedger(configName, poolConfig string) *async.Promise {
	return b.call("openPoolLedger", b.sdk.Pools, func() (_ any, err error) {
		defer err2.Handle(&err, nil)

		if configName == "" {
			return nil, sdkerr.Bridgef(sdkerr.InvalidArgument, "pool config name is empty")
		}
		h, reused := try.To2(b.pools.OpenOrReuse(configName, func() (*pool, error) {
			native, err := b.future(b.sdk.Pools.Open(configName, poolConfig)).Int()
			if err != nil {
				return nil, err
			}
			return &pool{native: native, name: configName}, nil
		}))
		if reused {
			glog.V(1).Infof("pool %s already open (%d)", configName, h)
		} else {
			glog.V(1).Infof("pool %s opened (%d)", configName, h)
		}
		return h, nil
	})
}

// ClosePoolLedger closes the pool and frees its handle and config name.
func (b *Bridge) ClosePoolLedger(ph int) *async.Promise {
	return b.call("closePoolLedger", b.sdk.Pools, func() (_ any, err error) {
		defer err2.Handle(&err, nil, func(err error) error {
			glog.Errorf("close pool (%d): %v", ph, err)
			return err
		})

		p, e := b.pools.Release(ph)
		if e != nil {
			return nil, notFound(e)
		}
		try.To(b.future(b.sdk.Pools.Close(p.native)).Err())
		glog.V(1).Infof("pool %s closed (%d)", p.name, ph)
		return nil, nil
	})
}
