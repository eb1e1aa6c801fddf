package cmd

import (
	"log"
	"os"

	"github.com/findy-network/findy-bridge/cmds/bridge"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var clientEnvs = map[string]string{
	"server":   "SERVER",
	"tls-path": "TLS_PATH",
	"timeout":  "TIMEOUT",
}

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <operation> [JSON args...]",
	Short: "Command for running one operation in a bridge",
	Long: `
Runs the operation in a running bridge and prints its JSON value. Every
argument is a JSON value. An argument which isn't valid JSON is sent as a
string. See the operations and their arguments with the ops command.

Example
	findy-bridge call openWallet '{"id":"wallet1"}' '{"key":"6cih1cVgRH8..."}'
	findy-bridge call cryptoSign 1 '"<verkey>"' '[104,105]'
	`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(clientEnvs, "")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		cCmd.Op = args[0]
		cCmd.Args = args[1:]
		cCmd.GrpcCmd = gCmd
		try.To(cCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To1(cCmd.Exec(os.Stdout))
		}
		return nil
	},
}

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Command for pinging a bridge",
	Long: `
Pings the bridge. The version info of the bridge is printed when it works.

Example
	findy-bridge ping --server localhost:50061
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(clientEnvs, "")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		pCmd := bridge.PingCmd{GrpcCmd: gCmd}
		try.To(pCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To1(pCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var (
	cCmd = bridge.CallCmd{}
	gCmd = cCmd.GrpcCmd
)

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	for _, c := range []*cobra.Command{callCmd, pingCmd} {
		flags := c.Flags()
		flags.StringVar(&gCmd.Addr, "server", "localhost:50061", flagInfo("bridge server address", "", clientEnvs["server"]))
		flags.StringVar(&gCmd.TLSPath, "tls-path", "", flagInfo("folder of the ca.crt, empty = insecure", "", clientEnvs["tls-path"]))
		rootCmd.AddCommand(c)
	}
	callCmd.Flags().DurationVar(&cCmd.Timeout, "timeout", 0, flagInfo("max wait of the operation, 0 = 30s", "", clientEnvs["timeout"]))
}
