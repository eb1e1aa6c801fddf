/*
Package bridge is the operation façade of the libindy bridge. A Bridge owns
the handle registries of the four resource families and the dispatcher. Every
operation resolves its handles thru the registries, runs the native call by
the operation's declared policy and returns a promise of the outcome.

The handles given out by the bridge are its own. They name the registry
entries which hold the native handles, and they are valid until the matching
close call.
*/
package bridge

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/handle"
	"github.com/findy-network/findy-bridge/agent/sdk"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/golang/glog"
)

type wallet struct {
	native int
	id     string
}

type pool struct {
	native int
	name   string
}

type search struct {
	native int
}

// Bridge is the handle-indexed async bridge over one SDK.
type Bridge struct {
	sdk     sdk.SDK
	disp    *async.Dispatcher
	timeout time.Duration

	wallets      *handle.Keyed[*wallet]
	pools        *handle.Keyed[*pool]
	searches     *handle.Registry[*search]
	credSearches *handle.Registry[*search]
}

// Option configures a Bridge.
type Option func(b *Bridge)

// WithNativeTimeout limits the wait of every native call. A native call not
// answering in time fails the operation.
func WithNativeTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		b.timeout = d
	}
}

// WithDispatcher sets the dispatcher of the bridge.
func WithDispatcher(d *async.Dispatcher) Option {
	return func(b *Bridge) {
		b.disp = d
	}
}

// New creates a bridge over the SDK capabilities.
func New(s sdk.SDK, opts ...Option) *Bridge {
	b := &Bridge{
		sdk:          s,
		wallets:      handle.NewKeyed(handle.New[*wallet](handle.Wallet, handle.LowestFree, 1)),
		pools:        handle.NewKeyed(handle.New[*pool](handle.Pool, handle.LowestFree, 1)),
		searches:     handle.New[*search](handle.Search, handle.Sequence, 1),
		credSearches: handle.New[*search](handle.CredentialSearch, handle.Sequence, 0),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.disp == nil {
		b.disp = async.NewDispatcher()
	}
	return b
}

// OpenWallets returns the wallet ids and handles of the open wallets.
func (b *Bridge) OpenWallets() map[string]int {
	return b.wallets.Keys()
}

// OpenPools returns the config names and handles of the open pools.
func (b *Bridge) OpenPools() map[string]int {
	return b.pools.Keys()
}

// Shutdown waits the worker operations out and closes every resource still
// open. Errors are logged only.
func (b *Bridge) Shutdown() {
	b.disp.Wait()

	for _, h := range b.credSearches.Handles() {
		if s, err := b.credSearches.Remove(h); err == nil {
			b.logClose("credential search", h,
				b.future(b.sdk.Anoncreds.ProverCloseCredentialsSearchForProofReq(s.native)).Err())
		}
	}
	for _, h := range b.searches.Handles() {
		if s, err := b.searches.Remove(h); err == nil && b.sdk.Records != nil {
			b.logClose("search", h, b.future(b.sdk.Records.CloseSearch(s.native)).Err())
		}
	}
	for _, h := range b.wallets.Keys() {
		if w, err := b.wallets.Release(h); err == nil {
			b.logClose("wallet "+w.id, h, b.future(b.sdk.Wallets.Close(w.native)).Err())
		}
	}
	for _, h := range b.pools.Keys() {
		if p, err := b.pools.Release(h); err == nil {
			b.logClose("pool "+p.name, h, b.future(b.sdk.Pools.Close(p.native)).Err())
		}
	}
}

func (b *Bridge) logClose(what string, h int, err error) {
	if err != nil {
		glog.Errorf("shutdown: close %s (%d): %v", what, h, err)
		return
	}
	glog.V(1).Infof("shutdown: %s (%d) closed", what, h)
}

func (b *Bridge) future(ch sdk.Channel) *async.Future {
	return async.NewFuture(ch, b.timeout)
}

// call runs fn as the operation name after checking that the capability
// supports it.
func (b *Bridge) call(name string, capability any, fn func() (any, error)) *async.Promise {
	return b.disp.Invoke(declared(name), func() (any, error) {
		if !sdk.Supports(capability, name) {
			return nil, sdkerr.Bridgef(sdkerr.Unsupported,
				"%s is not supported by the SDK", name)
		}
		return fn()
	})
}

// nothing is the success value of the operations which return no value.
func nothing(err error) (any, error) {
	return nil, err
}

func notFound(err error) error {
	if errors.Is(err, handle.ErrNotFound) {
		return sdkerr.Bridge(sdkerr.NotFound, err)
	}
	return err
}

func (b *Bridge) borrowWallet(h int) (int, func(), error) {
	w, release, err := b.wallets.Registry().Borrow(h)
	if err != nil {
		return 0, nil, notFound(err)
	}
	return w.native, release, nil
}

func (b *Bridge) borrowPool(h int) (int, func(), error) {
	p, release, err := b.pools.Registry().Borrow(h)
	if err != nil {
		return 0, nil, notFound(err)
	}
	return p.native, release, nil
}

func (b *Bridge) borrowSearch(h int) (int, func(), error) {
	s, release, err := b.searches.Borrow(h)
	if err != nil {
		return 0, nil, notFound(err)
	}
	return s.native, release, nil
}

func (b *Bridge) borrowCredSearch(h int) (int, func(), error) {
	s, release, err := b.credSearches.Borrow(h)
	if err != nil {
		return 0, nil, notFound(err)
	}
	return s.native, release, nil
}

// walletID returns the logical id of the wallet config.
func walletID(config string) (string, error) {
	var cfg struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(config), &cfg); err != nil {
		return "", sdkerr.Bridgef(sdkerr.InvalidArgument, "wallet config: %v", err)
	}
	if cfg.ID == "" {
		return "", sdkerr.Bridgef(sdkerr.InvalidArgument, "wallet config has no id")
	}
	return cfg.ID, nil
}
