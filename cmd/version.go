package cmd

import (
	"fmt"

	"github.com/findy-network/findy-bridge/agent/utils"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var versionInfo = "Findy Bridge v. " + utils.Version

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of the bridge",
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		try.To1(fmt.Println(versionInfo))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
