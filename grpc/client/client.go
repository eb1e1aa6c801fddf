/*
Package client is the Go client of the bridge's gRPC service.
*/
package client

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/findy-network/findy-bridge/grpc/api"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Cfg is the client configuration. The CA certificate ca.crt is read from
// TLSPath. An empty TLSPath means an insecure connection.
type Cfg struct {
	Addr    string
	TLSPath string
	Opts    []grpc.DialOption
}

// NewClient returns a connection to the bridge service.
func NewClient(cfg Cfg) (conn *grpc.ClientConn, err error) {
	defer err2.Handle(&err, "grpc client")

	creds := insecure.NewCredentials()
	if cfg.TLSPath != "" {
		certFile := filepath.Join(cfg.TLSPath, "ca.crt")
		creds = try.To1(credentials.NewClientTLSFromFile(certFile, ""))
	}
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(api.Codec{})),
	}, cfg.Opts...)

	glog.V(3).Infoln("connecting to", cfg.Addr)
	return grpc.NewClient(cfg.Addr, opts...)
}

// Args encodes the positional arguments of an operation.
func Args(args ...any) (raw []json.RawMessage, err error) {
	defer err2.Handle(&err, "encode args")

	raw = make([]json.RawMessage, len(args))
	for i, a := range args {
		raw[i] = try.To1(json.Marshal(a))
	}
	return raw, nil
}

// Invoke runs the operation in the bridge. A failed operation returns its
// *sdkerr.StructuredError.
func Invoke(ctx context.Context, conn *grpc.ClientConn, op string, args ...any) (v json.RawMessage, err error) {
	defer err2.Handle(&err)

	req := &api.Request{Op: op, Args: try.To1(Args(args...))}
	resp := new(api.Response)
	try.To(conn.Invoke(ctx, api.InvokeName, req, resp))
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Value, nil
}

// InvokeTo runs the operation and decodes its value to v.
func InvokeTo(ctx context.Context, conn *grpc.ClientConn, v any, op string, args ...any) (err error) {
	defer err2.Handle(&err)

	data := try.To1(Invoke(ctx, conn, op, args...))
	if len(data) == 0 || v == nil {
		return nil
	}
	return json.Unmarshal(data, v)
}
