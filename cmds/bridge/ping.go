package bridge

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/findy-network/findy-bridge/cmds"
	"github.com/findy-network/findy-bridge/grpc/client"
	"github.com/findy-network/findy-bridge/grpc/server"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type PingCmd struct {
	cmds.GrpcCmd
}

type pingResult struct {
	Info string
}

func (r pingResult) JSON() ([]byte, error) {
	return json.Marshal(r.Info)
}

func (c PingCmd) Validate() error {
	return c.GrpcCmd.Validate()
}

func (c PingCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "ping %s", c.Addr)

	conn := try.To1(client.NewClient(client.Cfg{Addr: c.Addr, TLSPath: c.TLSPath}))
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var info string
	try.To(client.InvokeTo(ctx, conn, &info, server.PingOp))
	cmds.Fprintln(w, info)
	return pingResult{Info: info}, nil
}
