package sdkerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	plain := errors.New("connection refused")
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantName string
		wantMsg  string
	}{
		{"native", NewNative(113, "bad json"), 113, "CommonInvalidStructure", "bad json"},
		{"native wrapped", fmt.Errorf("open wallet: %w", NewNative(204, "")), 204, "WalletNotFoundError", "WalletNotFoundError"},
		{"native unknown code", NewNative(9999, "x"), 9999, "UnknownIndyError9999", "x"},
		{"plain", plain, 0, "", "connection refused"},
		{"other", Other(plain), 0, "", "connection refused"},
		{"other wrapped", fmt.Errorf("call: %w", Other(plain)), 0, "", "call: connection refused"},
		{"bridge", Bridgef(NotFound, "wallet handle %d not found", 7), 0, "BridgeHandleNotFound", "wallet handle 7 not found"},
		{"nil", nil, 0, "", "unknown error"},
		{"empty", errors.New(""), 0, "", "*errors.errorString"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestNormalize_StructuredPassthrough(t *testing.T) {
	se := &StructuredError{Code: 212, Name: "WalletItemNotFound", Message: "m"}
	got := Normalize(fmt.Errorf("wrapped: %w", se))
	assert.Same(t, se, got)
}

func TestNewNative_CurrentErrorJSON(t *testing.T) {
	f := NewNative(307, `{"message":"Timeout","backtrace":"at pool.rs:42"}`)
	assert.Equal(t, "Timeout", f.Message)
	assert.Equal(t, "at pool.rs:42", f.Backtrace)

	se := Normalize(f)
	assert.Equal(t, 307, se.Code)
	assert.Equal(t, "PoolLedgerTimeout", se.Name)
	assert.Equal(t, "at pool.rs:42", se.Backtrace)

	f = NewNative(307, `{not json`)
	assert.Equal(t, `{not json`, f.Message)
	assert.Empty(t, f.Backtrace)
}

func TestStructuredError_JSON(t *testing.T) {
	se := &StructuredError{Code: 113, Name: "CommonInvalidStructure"}
	assert.JSONEq(t, `{"code":113,"name":"CommonInvalidStructure"}`, se.JSON())

	se = &StructuredError{Message: "x"}
	assert.JSONEq(t, `{"code":0,"message":"x"}`, se.JSON())
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("close: %w", Bridge(NotFound, errors.New("gone")))
	assert.True(t, IsKind(err, NotFound))
	assert.False(t, IsKind(err, Unsupported))
	assert.False(t, IsKind(errors.New("x"), NotFound))

	se := Normalize(err)
	assert.True(t, IsKind(se, NotFound))
	assert.False(t, IsKind(se, InvalidArgument))
	assert.False(t, IsKind(Normalize(NewNative(113, "bad")), NotFound))
}

func TestName(t *testing.T) {
	assert.Equal(t, "WalletAlreadyExistsError", Name(WalletAlreadyExistsError))
	assert.True(t, Known(113))
	assert.False(t, Known(402))
}
