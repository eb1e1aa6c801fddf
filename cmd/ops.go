package cmd

import (
	"os"

	"github.com/findy-network/findy-bridge/cmds/bridge"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

// opsCmd represents the ops command
var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Lists the operations of the bridge",
	Long: `
Lists every operation of the bridge with its dispatch policy and its argument
types. Worker operations run in their own goroutine, inline ones in the
caller's.
	`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		try.To1(oCmd.Exec(os.Stdout))
		return nil
	},
}

var oCmd = bridge.OpsCmd{}

func init() {
	opsCmd.Flags().BoolVar(&oCmd.JSON, "json", false, "print as JSON")
	rootCmd.AddCommand(opsCmd)
}
