package bridge

import (
	"encoding/json"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/findy-network/findy-bridge/agent/bridge"
	"github.com/findy-network/findy-bridge/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// OpsCmd lists the operations of the bridge with their dispatch policy and
// parameter types.
type OpsCmd struct {
	JSON bool
}

type opsResult []bridge.OpInfo

func (r opsResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c OpsCmd) Validate() error {
	return nil
}

func (c OpsCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "ops")

	ops := opsResult(bridge.Operations())
	if c.JSON {
		cmds.Fprintln(w, string(try.To1(ops.JSON())))
		return ops, nil
	}
	if w == nil {
		return ops, nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, op := range ops {
		cmds.Fprintf(tw, "%s\t%s\t(%s)\n", op.Name, op.Policy, strings.Join(op.Params, ", "))
	}
	try.To(tw.Flush())
	return ops, nil
}
