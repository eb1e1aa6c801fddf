package cmd

import (
	"log"
	"os"

	"github.com/findy-network/findy-bridge/agent/utils"
	"github.com/findy-network/findy-bridge/cmds/bridge"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var serveEnvs = map[string]string{
	"pool-protocol":         "POOL_PROTOCOL",
	"crypto-threads":        "CRYPTO_THREADS",
	"native-timeout":        "NATIVE_TIMEOUT",
	"grpc-port":             "GRPC_PORT",
	"grpc-cert-path":        "GRPC_CERT_PATH",
	"wallet-backup":         "WALLET_BACKUP",
	"wallet-backup-time":    "WALLET_BACKUP_TIME",
	"wallet-backup-key":     "WALLET_BACKUP_KEY",
	"wallet-backup-journal": "WALLET_BACKUP_JOURNAL",
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Command for starting the bridge service",
	Long: `
Starts the bridge and its gRPC service. The service runs until it's
interrupted. Every wallet, pool and search still open is closed before exit.

Example
	findy-bridge serve \
		--grpc-port 50061 \
		--wallet-backup /var/backups/wallets \
		--wallet-backup-time 04:00 \
		--wallet-backup-key 6cih1cVgRH8...dv67o8QbufxaTHot3Qxp
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(serveEnvs, "SERVE")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		try.To(sCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To1(sCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var sCmd = bridge.DefaultValues

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	sCmd.VersionInfo = versionInfo

	flags := serveCmd.Flags()
	flags.Uint64Var(&sCmd.PoolProtocol, "pool-protocol", utils.DefaultProtocolVersion, flagInfo("pool protocol", serveCmd.Name(), serveEnvs["pool-protocol"]))
	flags.IntVar(&sCmd.CryptoThreads, "crypto-threads", utils.DefaultCryptoThreads, flagInfo("libindy crypto thread pool size", serveCmd.Name(), serveEnvs["crypto-threads"]))
	flags.DurationVar(&sCmd.NativeTimeout, "native-timeout", 0, flagInfo("max wait of one libindy call, 0 = no limit", serveCmd.Name(), serveEnvs["native-timeout"]))
	flags.IntVar(&sCmd.GRPCPort, "grpc-port", utils.DefaultGRPCPort, flagInfo("grpc server port", serveCmd.Name(), serveEnvs["grpc-port"]))
	flags.StringVar(&sCmd.TLSCertPath, "grpc-cert-path", "", flagInfo("folder path for grpc server tls certificates", serveCmd.Name(), serveEnvs["grpc-cert-path"]))
	flags.StringVar(&sCmd.WalletBackupPath, "wallet-backup", "", flagInfo("path for wallet backups", serveCmd.Name(), serveEnvs["wallet-backup"]))
	flags.StringVar(&sCmd.WalletBackupTime, "wallet-backup-time", "", flagInfo("time of the day to start wallet backups in HH:MM[:SS], empty = no backups", serveCmd.Name(), serveEnvs["wallet-backup-time"]))
	flags.StringVar(&sCmd.WalletBackupKey, "wallet-backup-key", "", flagInfo("export key of the wallet backups", serveCmd.Name(), serveEnvs["wallet-backup-key"]))
	flags.StringVar(&sCmd.WalletBackupJournal, "wallet-backup-journal", "", flagInfo("backup journal's filename", serveCmd.Name(), serveEnvs["wallet-backup-journal"]))

	rootCmd.AddCommand(serveCmd)
}
