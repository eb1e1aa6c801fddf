package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/findy-network/findy-bridge/cmds"
	"github.com/findy-network/findy-bridge/grpc/client"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const defaultTimeout = 30 * time.Second

// CallCmd runs one operation in a running bridge. Every argument is a JSON
// value. An argument which isn't valid JSON is sent as a JSON string.
type CallCmd struct {
	cmds.GrpcCmd
	Op      string
	Args    []string
	Timeout time.Duration
}

type callResult json.RawMessage

func (v callResult) JSON() ([]byte, error) {
	return v, nil
}

func (c CallCmd) Validate() error {
	if err := c.GrpcCmd.Validate(); err != nil {
		return err
	}
	if c.Op == "" {
		return errors.New("operation name cannot be empty")
	}
	return nil
}

func (c CallCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "call %s", c.Op)

	conn := try.To1(client.NewClient(client.Cfg{Addr: c.Addr, TLSPath: c.TLSPath}))
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout(c.Timeout))
	defer cancel()

	v := try.To1(client.Invoke(ctx, conn, c.Op, argValues(c.Args)...))
	if len(v) == 0 {
		v = json.RawMessage("null")
	}
	cmds.Fprintln(w, string(v))
	return callResult(v), nil
}

func argValues(args []string) []any {
	values := make([]any, len(args))
	for i, a := range args {
		if json.Valid([]byte(a)) {
			values[i] = json.RawMessage(a)
		} else {
			values[i] = a
		}
	}
	return values
}

func timeout(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}
