/*
Package bridge implements the CLI commands of the bridge: serve runs the
bridge service, call, ping and ops talk to a running one.
*/
package bridge

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/findy-network/findy-bridge/agent/backup"
	"github.com/findy-network/findy-bridge/agent/bridge"
	"github.com/findy-network/findy-bridge/agent/sdk"
	"github.com/findy-network/findy-bridge/agent/sdk/indysdk"
	"github.com/findy-network/findy-bridge/agent/utils"
	"github.com/findy-network/findy-bridge/cmds"
	"github.com/findy-network/findy-bridge/grpc/server"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// ServeCmd starts the bridge and its gRPC service and runs until it's
// signaled to stop.
type ServeCmd struct {
	VersionInfo   string
	PoolProtocol  uint64
	CryptoThreads int
	NativeTimeout time.Duration

	GRPCPort    int
	TLSCertPath string

	WalletBackupPath    string
	WalletBackupTime    string
	WalletBackupKey     string
	WalletBackupJournal string

	// SDK replaces libindy when set.
	SDK *sdk.SDK
	// Listener replaces the TCP listener of the GRPCPort when set.
	Listener net.Listener
}

// DefaultValues are the defaults of the serve flags.
var DefaultValues = ServeCmd{
	PoolProtocol:  utils.DefaultProtocolVersion,
	CryptoThreads: utils.DefaultCryptoThreads,
	GRPCPort:      utils.DefaultGRPCPort,
}

func (c *ServeCmd) Validate() error {
	if c.PoolProtocol == 0 {
		return errors.New("pool protocol cannot be zero")
	}
	if c.CryptoThreads <= 0 {
		return errors.New("crypto threads must be positive")
	}
	if c.NativeTimeout < 0 {
		return errors.New("native timeout cannot be negative")
	}
	if c.Listener == nil && (c.GRPCPort <= 0 || c.GRPCPort > 65535) {
		return errors.New("grpc port is not valid")
	}
	if c.WalletBackupTime != "" {
		if err := backup.ValidateTime(c.WalletBackupTime); err != nil {
			return err
		}
		if c.WalletBackupKey == "" {
			glog.Warning("wallet backup key shouldn't be empty")
		}
	}
	return nil
}

// PreRun stores the startup values to the runtime settings.
func (c *ServeCmd) PreRun() {
	utils.Settings.SetVersionInfo(c.VersionInfo)
	utils.Settings.SetProtocolVersion(c.PoolProtocol)
	utils.Settings.SetCryptoThreads(c.CryptoThreads)
	utils.Settings.SetNativeTimeout(c.NativeTimeout)
	utils.Settings.SetGRPCPort(c.GRPCPort)
	utils.Settings.SetTLSCertPath(c.TLSCertPath)
	utils.Settings.SetWalletBackupPath(c.WalletBackupPath)
	utils.Settings.SetWalletBackupTime(c.WalletBackupTime)
	utils.Settings.SetWalletBackupKey(c.WalletBackupKey)
	utils.Settings.SetWalletBackupJournal(c.WalletBackupJournal)
}

func (c *ServeCmd) Exec(_ io.Writer) (r cmds.Result, err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return nil, c.Run(ctx)
}

// Run serves until the ctx is done. The bridge closes every resource still
// open before Run returns.
func (c *ServeCmd) Run(ctx context.Context) (err error) {
	defer err2.Handle(&err, "serve")

	c.PreRun()
	s := c.native()
	b := bridge.New(s, bridge.WithNativeTimeout(utils.Settings.NativeTimeout()))
	defer b.Shutdown()

	try.To1(b.SetProtocolVersion(int(utils.Settings.ProtocolVersion())).Await())

	stopBackup := try.To1(c.startBackup(b))
	defer stopBackup()

	srv := try.To1(server.Serve(server.Cfg{
		Port:     utils.Settings.GRPCPort(),
		TLSPath:  utils.Settings.TLSCertPath(),
		Listener: c.Listener,
		Caller:   b,
	}))
	glog.Infoln(utils.Settings.VersionInfo(), "started")

	<-ctx.Done()
	glog.Infoln("stopping the bridge")
	srv.GracefulStop()
	return nil
}

func (c *ServeCmd) native() sdk.SDK {
	if c.SDK != nil {
		return *c.SDK
	}
	indysdk.SetCryptoThreads(utils.Settings.CryptoThreads())
	return indysdk.New()
}

// startBackup schedules the wallet backups when the backup time is set. The
// returned func stops them.
func (c *ServeCmd) startBackup(b *bridge.Bridge) (stop func(), err error) {
	defer err2.Handle(&err, "wallet backup")

	at := utils.Settings.WalletBackupTime()
	if at == "" {
		return func() {}, nil
	}
	path := utils.Settings.WalletBackupPath()
	try.To(os.MkdirAll(path, 0700))
	journal := try.To1(backup.OpenJournal(utils.Settings.WalletBackupJournal()))
	defer err2.Handle(&err, func(err error) error {
		journal.Close()
		return err
	})

	bk := backup.New(b, path, utils.Settings.WalletBackupKey(), journal)
	try.To(bk.Start(at))
	return func() {
		bk.Stop()
		if err := journal.Close(); err != nil {
			glog.Error(err)
		}
	}, nil
}
