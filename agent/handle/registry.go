/*
Package handle offers the handle registries of the bridge. A Registry maps
synthetic integer handles to live native resources of one family and is the
only owner of them. Keyed adds the logical key index which keeps one open
resource per wallet id or pool name.
*/
package handle

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Family is a resource family. Every family has its own handle namespace.
type Family string

const (
	Wallet           Family = "wallet"
	Pool             Family = "pool"
	Search           Family = "search"
	CredentialSearch Family = "credential-search"
)

// Allocation is the handle allocation strategy of a registry.
type Allocation int

const (
	// LowestFree gives the smallest handle not used by a live entry, which
	// means that the handles are reused after closing.
	LowestFree Allocation = iota

	// Sequence gives a monotonically increasing counter.
	Sequence
)

// ErrNotFound is returned for absent, stale or wrong family handles.
var ErrNotFound = errors.New("handle not found")

// NotFoundError tells which handle was not found. It matches ErrNotFound.
type NotFoundError struct {
	Family Family
	Handle int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s handle %d not found", e.Family, e.Handle)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type entry[T any] struct {
	res     T
	removed bool
	l       sync.RWMutex // borrowers hold RLock, removal takes Lock
}

// drain waits the borrowers out and marks the entry dead.
func (e *entry[T]) drain() T {
	e.l.Lock()
	defer e.l.Unlock()
	e.removed = true
	return e.res
}

// Registry is a concurrency safe handle to resource map of one family.
type Registry[T any] struct {
	family Family
	alloc  Allocation
	first  int
	next   int
	live   map[int]*entry[T]
	l      sync.RWMutex
}

// New creates a registry for the family. The first handle given out is
// first.
func New[T any](family Family, alloc Allocation, first int) *Registry[T] {
	return &Registry[T]{
		family: family,
		alloc:  alloc,
		first:  first,
		next:   first,
		live:   make(map[int]*entry[T]),
	}
}

// Family returns the family of the registry.
func (r *Registry[T]) Family() Family {
	return r.family
}

// Insert stores the resource and returns a handle which is not used by any
// other live entry of the registry.
func (r *Registry[T]) Insert(res T) int {
	r.l.Lock()
	defer r.l.Unlock()
	return r.insert(res)
}

func (r *Registry[T]) insert(res T) int {
	h := r.allocate()
	r.live[h] = &entry[T]{res: res}
	return h
}

// allocate must be called with the write lock held.
func (r *Registry[T]) allocate() int {
	switch r.alloc {
	case Sequence:
		for {
			h := r.next
			if r.next == math.MaxInt32 {
				r.next = r.first
			} else {
				r.next++
			}
			if _, used := r.live[h]; !used {
				return h
			}
		}
	default:
		h := r.first
		for {
			if _, used := r.live[h]; !used {
				return h
			}
			h++
		}
	}
}

// Get returns the resource of the handle without taking ownership.
func (r *Registry[T]) Get(h int) (res T, err error) {
	r.l.RLock()
	e, ok := r.live[h]
	r.l.RUnlock()
	if !ok {
		return res, r.notFound(h)
	}
	return e.res, nil
}

// Borrow returns the resource of the handle and keeps it alive until release
// is called. Remove of the same handle waits for the release. The caller must
// not remove the borrowed handle before releasing it.
func (r *Registry[T]) Borrow(h int) (res T, release func(), err error) {
	r.l.RLock()
	e, ok := r.live[h]
	r.l.RUnlock()
	if !ok {
		return res, nil, r.notFound(h)
	}

	e.l.RLock()
	if e.removed {
		e.l.RUnlock()
		return res, nil, r.notFound(h)
	}
	var once sync.Once
	return e.res, func() { once.Do(e.l.RUnlock) }, nil
}

// Remove detaches the handle and returns its resource to the caller for
// final release. The second removal of the same handle fails with
// ErrNotFound.
func (r *Registry[T]) Remove(h int) (res T, err error) {
	e, err := r.detach(h)
	if err != nil {
		return res, err
	}
	return e.drain(), nil
}

func (r *Registry[T]) detach(h int) (*entry[T], error) {
	r.l.Lock()
	defer r.l.Unlock()
	return r.detachLocked(h)
}

func (r *Registry[T]) detachLocked(h int) (*entry[T], error) {
	e, ok := r.live[h]
	if !ok {
		return nil, r.notFound(h)
	}
	delete(r.live, h)
	return e, nil
}

func (r *Registry[T]) contains(h int) bool {
	r.l.RLock()
	defer r.l.RUnlock()
	_, ok := r.live[h]
	return ok
}

// Len returns the count of live entries.
func (r *Registry[T]) Len() int {
	r.l.RLock()
	defer r.l.RUnlock()
	return len(r.live)
}

// Handles returns the live handles in ascending order.
func (r *Registry[T]) Handles() []int {
	r.l.RLock()
	hs := make([]int, 0, len(r.live))
	for h := range r.live {
		hs = append(hs, h)
	}
	r.l.RUnlock()
	sort.Ints(hs)
	return hs
}

func (r *Registry[T]) notFound(h int) error {
	return &NotFoundError{Family: r.family, Handle: h}
}
