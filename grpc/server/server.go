/*
Package server is the gRPC service of the bridge. It runs the bridge
operations named in the requests and answers with their JSON encoded values
or structured errors.
*/
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"path/filepath"
	"time"

	"github.com/findy-network/findy-bridge/agent/async"
	"github.com/findy-network/findy-bridge/agent/sdkerr"
	"github.com/findy-network/findy-bridge/agent/utils"
	"github.com/findy-network/findy-bridge/grpc/api"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
)

// PingOp is answered by the server itself with the version info.
const PingOp = "ping"

// Caller runs the bridge operations by name.
type Caller interface {
	Call(name string, args []json.RawMessage) *async.Promise
}

// BridgeServer is the service implementation.
type BridgeServer interface {
	Invoke(ctx context.Context, req *api.Request) (*api.Response, error)
}

type bridgeServer struct {
	caller Caller
}

// New returns the service of the caller.
func New(c Caller) BridgeServer {
	return &bridgeServer{caller: c}
}

// Invoke runs the operation. An operation isn't cancelled when the client
// goes away, it only isn't waited anymore.
func (s *bridgeServer) Invoke(ctx context.Context, req *api.Request) (resp *api.Response, err error) {
	defer err2.Handle(&err, nil, func(err error) error {
		glog.Errorf("grpc invoke %s error: %s", req.Op, err)
		return err
	})

	if req.Op == PingOp {
		info := try.To1(json.Marshal(fmt.Sprintf("%s, ping ok", utils.Settings.VersionInfo())))
		return &api.Response{Value: info}, nil
	}

	v, err := s.caller.Call(req.Op, req.Args).AwaitContext(ctx)
	if ctx.Err() != nil {
		return nil, status.FromContextError(ctx.Err()).Err()
	}
	if err != nil {
		return &api.Response{Error: sdkerr.Normalize(err)}, nil
	}
	return &api.Response{Value: try.To1(json.Marshal(v))}, nil
}

func invokeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(api.Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BridgeServer).Invoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: api.InvokeName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BridgeServer).Invoke(ctx, req.(*api.Request))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is the descriptor of the bridge service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*BridgeServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Invoke",
			Handler:    invokeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bridge.json",
}

// Register registers the service of the caller to the server.
func Register(s *grpc.Server, c Caller) {
	s.RegisterService(&ServiceDesc, New(c))
}

func logInvoke(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if glog.V(3) {
		op := ""
		if r, ok := req.(*api.Request); ok {
			op = r.Op
		}
		glog.Infof("%s %s took %v", info.FullMethod, op, time.Since(start))
	}
	return resp, err
}

// Cfg is the server configuration. Certificates server.crt and server.pem
// are read from TLSPath. An empty TLSPath means an insecure server.
type Cfg struct {
	Port     int
	TLSPath  string
	Listener net.Listener
	Caller   Caller
}

// Serve starts the server in its own goroutine and returns it for stopping.
func Serve(cfg Cfg) (s *grpc.Server, err error) {
	defer err2.Handle(&err, "grpc serve")

	opts := []grpc.ServerOption{
		grpc.ForceServerCodec(api.Codec{}),
		grpc.UnaryInterceptor(logInvoke),
	}
	if cfg.TLSPath != "" {
		certFile := filepath.Join(cfg.TLSPath, "server.crt")
		keyFile := filepath.Join(cfg.TLSPath, "server.pem")
		creds := try.To1(credentials.NewServerTLSFromFile(certFile, keyFile))
		opts = append(opts, grpc.Creds(creds))
	}

	lis := cfg.Listener
	if lis == nil {
		lis = try.To1(net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port)))
	}

	s = grpc.NewServer(opts...)
	Register(s, cfg.Caller)

	glog.V(1).Infof("starting gRPC server at %s, tls: %v", lis.Addr(), cfg.TLSPath != "")
	go func() {
		defer err2.Catch(err2.Err(func(err error) {
			glog.Error(err)
		}))
		try.To(s.Serve(lis))
	}()
	return s, nil
}
