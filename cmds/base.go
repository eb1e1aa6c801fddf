/*
Package cmds holds the command implementations of the CLI. Every command
validates its arguments with Validate and runs with Exec.
*/
package cmds

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lainio/err2/try"
)

// Result is the outcome of a command which can be printed as JSON.
type Result interface {
	JSON() ([]byte, error)
}

type Command interface {
	Validate() error
	Exec(w io.Writer) (r Result, err error)
}

// GrpcCmd is the connection part of the commands which talk to a running
// bridge. An empty TLSPath means an insecure connection.
type GrpcCmd struct {
	TLSPath string
	Addr    string
}

func (c GrpcCmd) Validate() error {
	if c.Addr == "" {
		return errors.New("server address cannot be empty")
	}
	return nil
}

// ParseLoggingArgs parses glog flags from the string like they were given in
// the command line.
func ParseLoggingArgs(s string) {
	args := make([]string, 1, 12)
	args[0] = os.Args[0]
	args = append(args, strings.Fields(s)...)
	orgArgs := os.Args
	os.Args = args
	flag.Parse()
	os.Args = orgArgs
}

// Fprintln is fmt.Fprintln but it allows writer to be nil. Note! it throws an
// error.
func Fprintln(w io.Writer, a ...any) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf but it allows writer to be nil. Note! it throws an
// error.
func Fprintf(w io.Writer, format string, a ...any) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}
