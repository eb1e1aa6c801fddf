package bridge

import (
	"strconv"

	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
)

// ParsedResponse is a ledger object with its id.
type ParsedResponse struct {
	ID   string `json:"id"`
	JSON string `json:"json"`
}

// ParsedDeltaResponse is a revocation registry object with its id and the
// ledger timestamp.
type ParsedDeltaResponse struct {
	ID        string `json:"id"`
	JSON      string `json:"json"`
	Timestamp uint64 `json:"timestamp"`
}

// IssuedCredential is the outcome of credential issuing. The revocation
// fields are empty for a non-revocable credential.
type IssuedCredential struct {
	Credential    string `json:"credential"`
	RevocID       string `json:"revocId,omitempty"`
	RevocRegDelta string `json:"revocRegDelta,omitempty"`
}

// CredentialRequest is the prover's credential request and its metadata.
type CredentialRequest struct {
	Request  string `json:"request"`
	Metadata string `json:"metadata"`
}

func parsed(f *async.Future) (any, error) {
	id, json, _, err := f.Strs()
	if err != nil {
		return nil, err
	}
	return ParsedResponse{ID: id, JSON: json}, nil
}

func parsedDelta(f *async.Future) (any, error) {
	id, json, ts, err := f.Strs()
	if err != nil {
		return nil, err
	}
	r := ParsedDeltaResponse{ID: id, JSON: json}
	if ts != "" {
		r.Timestamp, err = strconv.ParseUint(ts, 10, 64)
		if err != nil {
			return nil, &sdkerr.OtherFailure{
				Message: "ledger timestamp: " + err.Error(),
				Err:     err,
			}
		}
	}
	return r, nil
}
