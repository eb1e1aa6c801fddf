package handle

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyed_ConcurrentOpenOnce(t *testing.T) {
	k := NewKeyed(New[*res](Wallet, LowestFree, 1))

	var opens int32
	gate := make(chan struct{})
	open := func() (*res, error) {
		atomic.AddInt32(&opens, 1)
		<-gate
		return &res{name: "wallet-A"}, nil
	}

	const callers = 2
	var wg sync.WaitGroup
	handles := make([]int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, _, err := k.OpenOrReuse("wallet-A", open)
			assert.NoError(t, err)
			handles[i] = h
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&opens))
	assert.Equal(t, handles[0], handles[1])
	assert.Equal(t, map[string]int{"wallet-A": handles[0]}, k.Keys())
	assert.Equal(t, 1, k.Registry().Len())
}

func TestKeyed_ReuseDoesNotOpen(t *testing.T) {
	k := NewKeyed(New[*res](Pool, LowestFree, 1))

	h, reused, err := k.OpenOrReuse("findy", func() (*res, error) {
		return &res{name: "findy"}, nil
	})
	require.NoError(t, err)
	assert.False(t, reused)

	h2, reused, err := k.OpenOrReuse("findy", func() (*res, error) {
		t.Fatal("open must not be called for an open key")
		return nil, nil
	})
	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, h, h2)
}

func TestKeyed_FailedOpenStoresNothing(t *testing.T) {
	k := NewKeyed(New[*res](Wallet, LowestFree, 1))
	openErr := errors.New("wallet not found")

	_, _, err := k.OpenOrReuse("w1", func() (*res, error) {
		return nil, openErr
	})
	assert.ErrorIs(t, err, openErr)
	assert.Empty(t, k.Keys())
	assert.Equal(t, 0, k.Registry().Len())

	_, ok := k.Lookup("w1")
	assert.False(t, ok)
}

func TestKeyed_Release(t *testing.T) {
	k := NewKeyed(New[*res](Wallet, LowestFree, 1))

	h1, _, err := k.OpenOrReuse("w1", func() (*res, error) { return &res{name: "w1"}, nil })
	require.NoError(t, err)
	h2, _, err := k.OpenOrReuse("w2", func() (*res, error) { return &res{name: "w2"}, nil })
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	got, err := k.Release(h1)
	require.NoError(t, err)
	assert.Equal(t, "w1", got.name)
	assert.Equal(t, map[string]int{"w2": h2}, k.Keys())

	_, err = k.Registry().Get(h1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = k.Release(h1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, map[string]int{"w2": h2}, k.Keys())

	// after release the key opens again
	var opened bool
	h3, reused, err := k.OpenOrReuse("w1", func() (*res, error) {
		opened = true
		return &res{name: "w1"}, nil
	})
	require.NoError(t, err)
	assert.True(t, opened)
	assert.False(t, reused)
	assert.Equal(t, h1, h3, "lowest free handle is reused")
}

func TestKeyed_DifferentKeysDoNotBlock(t *testing.T) {
	k := NewKeyed(New[*res](Pool, LowestFree, 1))

	slow := make(chan struct{})
	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_, _, err := k.OpenOrReuse("slow", func() (*res, error) {
			<-slow
			return &res{name: "slow"}, nil
		})
		assert.NoError(t, err)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, err := k.OpenOrReuse("fast", func() (*res, error) {
			return &res{name: "fast"}, nil
		})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("open of another key was blocked")
	}
	close(slow)
	<-slowDone
	assert.Len(t, k.Keys(), 2)
}

func TestKeyed_StaleIndexEntryIsDropped(t *testing.T) {
	reg := New[*res](Wallet, LowestFree, 1)
	k := NewKeyed(reg)

	h, _, err := k.OpenOrReuse("w1", func() (*res, error) { return &res{}, nil })
	require.NoError(t, err)

	// break the invariant on purpose by removing behind the index
	_, err = reg.Remove(h)
	require.NoError(t, err)

	_, ok := k.Lookup("w1")
	assert.False(t, ok)
	assert.Empty(t, k.Keys())
}
