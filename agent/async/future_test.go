package async

import (
	"errors"
	"testing"
	"time"

	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillChannel(handle int, ch chan dto.Result) {
	r := dto.Result{}
	r.SetHandle(handle)
	ch <- r
}

func fillChannelWithError(code int, text string, ch chan dto.Result) {
	ch <- dto.Result{
		Er: dto.Err{
			Error: text,
			Code:  code,
		},
	}
}

func TestFuture_Int(t *testing.T) {
	ch := make(chan dto.Result, 1)
	f := NewFuture(ch, 0)
	assert.Equal(t, triggered, f.On)

	fillChannel(7, ch)
	h, err := f.Int()
	require.NoError(t, err)
	assert.Equal(t, 7, h)

	// consumed once, same value after
	h, err = f.Int()
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, Consumed, f.On)
}

func TestFuture_SetChan(t *testing.T) {
	f := &Future{}
	assert.Equal(t, empty, f.On)

	ch1 := make(chan dto.Result, 1)
	ch2 := make(chan dto.Result, 1)
	fillChannel(1, ch1)
	fillChannel(2, ch2)

	f.SetChan(ch1)
	f.SetChan(ch2) // uneaten result of ch1 is consumed
	assert.Len(t, ch1, 0)

	h, err := f.Int()
	require.NoError(t, err)
	assert.Equal(t, 2, h)
}

func TestFuture_Strs(t *testing.T) {
	ch := make(chan dto.Result, 1)
	ch <- dto.Result{Data: dto.Data{Str1: "did", Str2: "verkey", Str3: "3"}}
	f := NewFuture(ch, 0)

	s1, s2, s3, err := f.Strs()
	require.NoError(t, err)
	assert.Equal(t, "did", s1)
	assert.Equal(t, "verkey", s2)
	assert.Equal(t, "3", s3)

	s1, err = f.Str1()
	require.NoError(t, err)
	assert.Equal(t, "did", s1)
}

func TestFuture_Classification(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		text     string
		native   bool
		wantCode int
	}{
		{"native", 204, "wallet not found", true, 204},
		{"native without text", 113, "", true, 113},
		{"text only", 0, "TEST_ERROR", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := make(chan dto.Result, 1)
			fillChannelWithError(tt.code, tt.text, ch)
			f := NewFuture(ch, 0)

			_, err := f.Result()
			require.Error(t, err)

			var nf *sdkerr.NativeFailure
			assert.Equal(t, tt.native, errors.As(err, &nf))
			var of *sdkerr.OtherFailure
			assert.Equal(t, !tt.native, errors.As(err, &of))
			assert.Equal(t, tt.wantCode, sdkerr.Code(err))

			// the failure is kept for the later reads
			assert.Equal(t, err, f.Err())
		})
	}
}

func TestFuture_ClosedChannel(t *testing.T) {
	ch := make(chan dto.Result)
	close(ch)
	f := NewFuture(ch, 0)

	_, err := f.Int()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 0, sdkerr.Code(err))
}

func TestFuture_Timeout(t *testing.T) {
	ch := make(chan dto.Result)
	f := NewFuture(ch, 20*time.Millisecond)

	start := time.Now()
	_, err := f.Bytes()
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)

	var of *sdkerr.OtherFailure
	assert.True(t, errors.As(err, &of))
}

func TestFuture_Done(t *testing.T) {
	f := Done(dto.Result{Data: dto.Data{Str1: "ready"}})
	s, err := f.Str1()
	require.NoError(t, err)
	assert.Equal(t, "ready", s)
}
