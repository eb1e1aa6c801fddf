/*
Package async runs the bridge operations and delivers their outcome thru
promises. An operation runs inline on the calling goroutine or on its own
worker goroutine, which is declared per operation with a Policy. Every
promise is settled exactly once: a success value passes thru untouched and
every failure, panics included, is normalized to *sdkerr.StructuredError.
*/
package async

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Policy tells where an operation runs.
type Policy int

const (
	// Inline runs the operation on the calling goroutine.
	Inline Policy = iota

	// Worker runs the operation on a dedicated goroutine and returns the
	// promise at once. It's for calls which may block for long, like pool
	// connections and ledger requests.
	Worker
)

func (p Policy) String() string {
	if p == Worker {
		return "worker"
	}
	return "inline"
}

// Op is the static declaration of an operation.
type Op struct {
	Name   string
	Policy Policy
}

// Promise is the eventual outcome of one operation.
type Promise struct {
	ID string
	Op string

	done  chan struct{}
	once  sync.Once
	value any
	err   *sdkerr.StructuredError
}

func newPromise(op string) *Promise {
	return &Promise{
		ID:   uuid.New().String(),
		Op:   op,
		done: make(chan struct{}),
	}
}

// Resolved returns an already settled successful promise.
func Resolved(op string, v any) *Promise {
	p := newPromise(op)
	p.resolve(v)
	return p
}

// Rejected returns an already settled failed promise.
func Rejected(op string, err error) *Promise {
	p := newPromise(op)
	p.reject(err)
	return p
}

// resolve and reject report if they were the one which settled the promise.
func (p *Promise) resolve(v any) bool {
	settled := false
	p.once.Do(func() {
		p.value = v
		settled = true
		close(p.done)
	})
	return settled
}

func (p *Promise) reject(err error) bool {
	settled := false
	p.once.Do(func() {
		p.err = sdkerr.Normalize(err)
		settled = true
		close(p.done)
	})
	return settled
}

// Done is closed when the promise is settled.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the promise is settled. The error is always a
// *sdkerr.StructuredError.
func (p *Promise) Await() (any, error) {
	<-p.done
	if p.err != nil {
		return nil, p.err
	}
	return p.value, nil
}

// AwaitContext is Await which gives up waiting when ctx is done. The
// operation itself continues to its end.
func (p *Promise) AwaitContext(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.Await()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Failure returns the rejection of a settled promise or nil.
func (p *Promise) Failure() *sdkerr.StructuredError {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Await waits the promise and type asserts its value.
func Await[T any](p *Promise) (v T, err error) {
	r, err := p.Await()
	if err != nil {
		return v, err
	}
	if r == nil {
		return v, nil
	}
	v, ok := r.(T)
	if !ok {
		return v, sdkerr.Normalize(errTypeMismatch(p.Op, r, v))
	}
	return v, nil
}

func errTypeMismatch(op string, got, want any) error {
	return fmt.Errorf("%s: result type %T, expected %T", op, got, want)
}

// Dispatcher runs the operations by their policy.
type Dispatcher struct {
	workers  conc.WaitGroup
	inflight atomic.Int64
}

// NewDispatcher creates a dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Invoke runs fn by the policy of op and returns the promise of its outcome.
func (d *Dispatcher) Invoke(op Op, fn func() (any, error)) *Promise {
	p := newPromise(op.Name)
	if glog.V(3) {
		glog.Infof("-> %s %s (%s)", op.Name, p.ID, op.Policy)
	}

	switch op.Policy {
	case Worker:
		d.inflight.Add(1)
		d.workers.Go(func() {
			defer d.inflight.Add(-1)
			run(p, fn)
		})
	default:
		run(p, fn)
	}
	return p
}

// Inflight returns the count of the worker calls not yet settled.
func (d *Dispatcher) Inflight() int64 {
	return d.inflight.Load()
}

// Wait blocks until every worker call is settled.
func (d *Dispatcher) Wait() {
	d.workers.Wait()
}

func run(p *Promise, fn func() (any, error)) {
	var (
		v   any
		err error
		pc  panics.Catcher
	)
	pc.Try(func() {
		v, err = fn()
	})
	if r := pc.Recovered(); r != nil {
		glog.Errorf("operation %s %s panicked: %v", p.Op, p.ID, r.Value)
		err = sdkerr.Other(r.AsError())
	}

	if err != nil {
		p.reject(err)
		if glog.V(3) {
			glog.Infof("<- %s %s rejected: %v", p.Op, p.ID, p.err)
		}
		return
	}
	p.resolve(v)
	if glog.V(3) {
		glog.Infof("<- %s %s resolved", p.Op, p.ID)
	}
}
