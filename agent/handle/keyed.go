package handle

import (
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sync/singleflight"
)

// Keyed is the idempotent-open cache of a registry. It keeps the logical key
// to handle index in step with the registry: both are updated in the same
// critical section on open and on release.
type Keyed[T any] struct {
	reg  *Registry[T]
	keys map[string]int
	l    sync.Mutex
	sfg  singleflight.Group
}

type opened struct {
	h      int
	reused bool
}

// NewKeyed creates the key index for the registry. All the inserts and
// removals of the registry must go thru the returned Keyed.
func NewKeyed[T any](reg *Registry[T]) *Keyed[T] {
	return &Keyed[T]{
		reg:  reg,
		keys: make(map[string]int),
	}
}

// Registry returns the registry the index belongs to.
func (k *Keyed[T]) Registry() *Registry[T] {
	return k.reg
}

// OpenOrReuse returns the handle of the already open resource of the key. If
// there isn't one, open is called and its result is stored to the registry
// and to the index. Concurrent callers of the same key share one call of
// open. If open fails nothing is stored.
func (k *Keyed[T]) OpenOrReuse(key string, open func() (T, error)) (h int, reused bool, err error) {
	ran := false
	v, err, _ := k.sfg.Do(key, func() (interface{}, error) {
		ran = true
		if h, ok := k.Lookup(key); ok {
			return opened{h: h, reused: true}, nil
		}

		res, err := open()
		if err != nil {
			return nil, err
		}

		k.l.Lock()
		defer k.l.Unlock()
		h := k.reg.Insert(res)
		k.keys[key] = h
		if glog.V(3) {
			glog.Infof("%s '%s' opened with handle %d", k.reg.family, key, h)
		}
		return opened{h: h}, nil
	})
	if err != nil {
		return 0, false, err
	}
	o := v.(opened)
	return o.h, o.reused || !ran, nil
}

// Lookup returns the live handle of the key.
func (k *Keyed[T]) Lookup(key string) (int, bool) {
	k.l.Lock()
	defer k.l.Unlock()

	h, ok := k.keys[key]
	if !ok {
		return 0, false
	}
	if !k.reg.contains(h) {
		glog.Warningf("%s index had key '%s' for dead handle %d, dropping it",
			k.reg.family, key, h)
		delete(k.keys, key)
		return 0, false
	}
	return h, true
}

// Release removes the handle from the registry and its key from the index.
// It waits until the borrowers of the handle have released it and returns
// the resource for the final close.
func (k *Keyed[T]) Release(h int) (res T, err error) {
	k.l.Lock()
	e, err := k.reg.detach(h)
	if err == nil {
		for key, kh := range k.keys {
			if kh == h {
				delete(k.keys, key)
				break
			}
		}
	}
	k.l.Unlock()

	if err != nil {
		return res, err
	}
	return e.drain(), nil
}

// Keys returns a snapshot of the index.
func (k *Keyed[T]) Keys() map[string]int {
	k.l.Lock()
	defer k.l.Unlock()

	m := make(map[string]int, len(k.keys))
	for key, h := range k.keys {
		m[key] = h
	}
	return m
}
