package async

import (
	"errors"
	"sync"
	"time"

	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/golang/glog"
)

// State of the Future.
type State uint32

const (
	empty State = iota
	triggered
	Consumed
)

// ErrClosed is the failure of a native channel closed without a result.
var ErrClosed = errors.New("native result channel closed")

// ErrTimeout is the failure of a native call which did not answer in time.
var ErrTimeout = errors.New("native call timed out")

// Future is the single consumption of a native result channel. The result is
// classified when it is received: a result with a libindy code becomes a
// *sdkerr.NativeFailure and a result with only an error text an
// *sdkerr.OtherFailure.
type Future struct {
	On      State
	V       dto.Result
	err     error
	ch      <-chan dto.Result
	timeout time.Duration
	lo      sync.Mutex
}

// NewFuture changes the native result channel to a Future. Zero timeout waits
// forever.
func NewFuture(ch chan dto.Result, timeout time.Duration) *Future {
	f := &Future{timeout: timeout}
	f.SetChan(ch)
	return f
}

// Done returns an already consumed Future of the value. It's used when the
// result is known without a native call.
func Done(r dto.Result) *Future {
	return &Future{V: r, err: classify(r), On: Consumed}
}

// SetChan sets the channel for the Future. A pending result of the previous
// channel is consumed first.
func (f *Future) SetChan(ch chan dto.Result) {
	f.lo.Lock()
	defer f.lo.Unlock()
	if f.On == triggered {
		f.receive()
	}
	f.ch = ch
	f.err = nil
	f.On = triggered
}

// value reads the channel once and returns the result and its classified
// failure for every later call as well.
func (f *Future) value() (dto.Result, error) {
	f.lo.Lock()
	defer f.lo.Unlock()
	if f.On == triggered {
		f.receive()
	}
	return f.V, f.err
}

// receive must be called with the lock held.
func (f *Future) receive() {
	defer func() { f.On = Consumed }()

	var timer <-chan time.Time
	if f.timeout > 0 {
		t := time.NewTimer(f.timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case r, ok := <-f.ch:
		if !ok {
			f.err = &sdkerr.OtherFailure{Err: ErrClosed}
			return
		}
		f.V = r
		f.err = classify(r)
	case <-timer:
		glog.Warningf("native call did not answer in %v", f.timeout)
		f.err = &sdkerr.OtherFailure{Err: ErrTimeout}
	}
}

func classify(r dto.Result) error {
	switch {
	case r.Er.Code != 0:
		return sdkerr.NewNative(r.Er.Code, r.Er.Error)
	case r.Er.Error != "":
		return &sdkerr.OtherFailure{Message: r.Er.Error}
	}
	return nil
}

// Result returns the native result or its failure.
func (f *Future) Result() (*dto.Result, error) {
	r, err := f.value()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Err waits the result and returns only its failure.
func (f *Future) Err() error {
	_, err := f.value()
	return err
}

func (f *Future) Int() (int, error) {
	r, err := f.value()
	return r.Handle(), err
}

func (f *Future) Strs() (s1, s2, s3 string, err error) {
	r, err := f.value()
	if err != nil {
		return "", "", "", err
	}
	return r.Str1(), r.Str2(), r.Str3(), nil
}

func (f *Future) Str1() (string, error) {
	s1, _, _, err := f.Strs()
	return s1, err
}

func (f *Future) Bytes() ([]byte, error) {
	r, err := f.value()
	if err != nil {
		return nil, err
	}
	return r.Bytes(), nil
}

func (f *Future) Yes() (bool, error) {
	r, err := f.value()
	if err != nil {
		return false, err
	}
	return r.Yes(), nil
}
