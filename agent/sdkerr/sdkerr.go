/*
Package sdkerr normalizes the failures of the native SDK calls and of the
bridge itself into one StructuredError contract.

A failed native call is classified exactly once, at the point where its result
is received from the native channel: a result carrying a libindy error code
becomes a *NativeFailure, everything else an *OtherFailure. Bridge level
problems like stale handles are *BridgeFailure values. Normalize turns any of
them, or any other error, into a StructuredError.
*/
package sdkerr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind is the bridge-domain failure category.
type Kind string

const (
	NotFound         Kind = "HandleNotFound"
	InvalidArgument  Kind = "InvalidArgument"
	UnknownOperation Kind = "UnknownOperation"
	Unsupported      Kind = "Unsupported"
)

// StructuredError is the rejection payload delivered to the caller.
type StructuredError struct {
	Code      int    `json:"code"`
	Name      string `json:"name,omitempty"`
	Message   string `json:"message,omitempty"`
	Backtrace string `json:"backtrace,omitempty"`
}

func (e *StructuredError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Message)
	}
	return fmt.Sprintf("error (%d): %s", e.Code, e.Message)
}

// JSON returns the error serialized as the rejection payload.
func (e *StructuredError) JSON() string {
	b, err := json.Marshal(e)
	if err != nil {
		// cannot happen with string and int fields
		return fmt.Sprintf(`{"code":%d}`, e.Code)
	}
	return string(b)
}

// NativeFailure is a failure reported by the wrapped SDK with its own code.
type NativeFailure struct {
	Code      int
	Message   string
	Backtrace string
}

func (f *NativeFailure) Error() string {
	return fmt.Sprintf("indy error %s (%d): %s", Name(f.Code), f.Code, f.Message)
}

// NewNative builds a NativeFailure from the SDK error code and text. If the
// text is libindy's current error JSON its message and backtrace are lifted.
func NewNative(code int, text string) *NativeFailure {
	f := &NativeFailure{Code: code, Message: text}
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		var current struct {
			Message   string `json:"message"`
			Backtrace string `json:"backtrace"`
		}
		if json.Unmarshal([]byte(text), &current) == nil && current.Message != "" {
			f.Message = current.Message
			f.Backtrace = current.Backtrace
		}
	}
	return f
}

// OtherFailure is any failure that did not come with an SDK error code.
type OtherFailure struct {
	Message string
	Err     error
}

func (f *OtherFailure) Error() string {
	if f.Message != "" {
		return f.Message
	}
	if f.Err != nil {
		return f.Err.Error()
	}
	return "unknown failure"
}

func (f *OtherFailure) Unwrap() error {
	return f.Err
}

// Other wraps err as an OtherFailure.
func Other(err error) *OtherFailure {
	return &OtherFailure{Err: err}
}

// BridgeFailure is a failure of the bridge's own bookkeeping.
type BridgeFailure struct {
	Kind Kind
	Err  error
}

func (f *BridgeFailure) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return f.Err.Error()
}

func (f *BridgeFailure) Unwrap() error {
	return f.Err
}

// Bridge builds a BridgeFailure of the kind from err.
func Bridge(kind Kind, err error) *BridgeFailure {
	return &BridgeFailure{Kind: kind, Err: err}
}

// Bridgef builds a BridgeFailure of the kind with a formatted message.
func Bridgef(kind Kind, format string, args ...any) *BridgeFailure {
	return &BridgeFailure{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Normalize converts any failure to a StructuredError. It never fails.
func Normalize(err error) *StructuredError {
	if err == nil {
		return &StructuredError{Message: "unknown error"}
	}

	var se *StructuredError
	if errors.As(err, &se) {
		return se
	}

	var nf *NativeFailure
	if errors.As(err, &nf) {
		name := Name(nf.Code)
		msg := nf.Message
		if msg == "" {
			msg = name
		}
		return &StructuredError{
			Code:      nf.Code,
			Name:      name,
			Message:   msg,
			Backtrace: nf.Backtrace,
		}
	}

	var bf *BridgeFailure
	if errors.As(err, &bf) {
		return &StructuredError{
			Name:    "Bridge" + string(bf.Kind),
			Message: message(err),
		}
	}

	return &StructuredError{Message: message(err)}
}

// Code returns the numeric code Normalize would give to err.
func Code(err error) int {
	return Normalize(err).Code
}

// IsKind tells if err is a BridgeFailure of the kind, as is or normalized.
func IsKind(err error, kind Kind) bool {
	var bf *BridgeFailure
	if errors.As(err, &bf) {
		return bf.Kind == kind
	}
	var se *StructuredError
	return errors.As(err, &se) && se.Name == "Bridge"+string(kind)
}

func message(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("%T", err)
}
