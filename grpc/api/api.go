/*
Package api is the wire contract of the bridge's gRPC service. The service
has one unary method which runs a bridge operation by its name. Messages are
JSON encoded with Codec.
*/
package api

import (
	"encoding/json"

	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"google.golang.org/grpc/encoding"
)

const (
	ServiceName = "findy.bridge.v1.Bridge"
	InvokeName  = "/" + ServiceName + "/Invoke"
)

// Request runs the operation Op with the positional JSON arguments.
type Request struct {
	Op   string            `json:"op"`
	Args []json.RawMessage `json:"args,omitempty"`
}

// Response has the JSON encoded value of a successful operation or the
// structured error of a failed one.
type Response struct {
	Value json.RawMessage         `json:"value,omitempty"`
	Error *sdkerr.StructuredError `json:"error,omitempty"`
}

// Codec is the JSON codec of the service messages.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return "json"
}

func init() {
	encoding.RegisterCodec(Codec{})
}
