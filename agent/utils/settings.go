package utils

import (
	"path/filepath"
	"time"

	"github.com/golang/glog"
)

const (
	DefaultGRPCPort        = 50061
	DefaultProtocolVersion = 2
	DefaultCryptoThreads   = 8
)

var Settings = &Hub{}

type Hub struct {
	grpcPort    int    // port of the bridge's gRPC service
	tlsCertPath string // folder of server.crt/server.key, empty = insecure
	versionInfo string // Version number etc. in free format as a string

	protocolVersion uint64        // pool protocol version set at startup
	cryptoThreads   int           // libindy crypto thread pool size
	nativeTimeout   time.Duration // max wait of one native call, 0 = forever

	walletBackupPath    string // folder of the wallet exports
	walletBackupTime    string // daily backup time as HH:MM, empty = no backups
	walletBackupKey     string // export key of the backups
	walletBackupJournal string // bbolt file of the backup journal
}

func (h *Hub) GRPCPort() int {
	if h.grpcPort == 0 {
		return DefaultGRPCPort
	}
	return h.grpcPort
}

func (h *Hub) SetGRPCPort(port int) {
	h.grpcPort = port
}

func (h *Hub) TLSCertPath() string {
	return h.tlsCertPath
}

// SetTLSCertPath sets the folder of the server certificate. Empty path means
// an insecure server.
func (h *Hub) SetTLSCertPath(path string) {
	h.tlsCertPath = path
}

// SetVersionInfo sets current version info of the bridge.
func (h *Hub) SetVersionInfo(info string) {
	h.versionInfo = info
}

func (h *Hub) VersionInfo() string {
	return h.versionInfo
}

func (h *Hub) ProtocolVersion() uint64 {
	if h.protocolVersion == 0 {
		return DefaultProtocolVersion
	}
	return h.protocolVersion
}

func (h *Hub) SetProtocolVersion(version uint64) {
	h.protocolVersion = version
}

func (h *Hub) CryptoThreads() int {
	if h.cryptoThreads == 0 {
		return DefaultCryptoThreads
	}
	return h.cryptoThreads
}

func (h *Hub) SetCryptoThreads(n int) {
	h.cryptoThreads = n
}

// NativeTimeout is the longest time one native call is waited. Zero means no
// limit.
func (h *Hub) NativeTimeout() time.Duration {
	return h.nativeTimeout
}

func (h *Hub) SetNativeTimeout(to time.Duration) {
	h.nativeTimeout = to
}

func (h *Hub) WalletBackupPath() string {
	if h.walletBackupPath == "" {
		return filepath.Join(BaseDir(), "backups")
	}
	return h.walletBackupPath
}

func (h *Hub) SetWalletBackupPath(path string) {
	h.walletBackupPath = path
}

func (h *Hub) WalletBackupTime() string {
	return h.walletBackupTime
}

func (h *Hub) SetWalletBackupTime(t string) {
	h.walletBackupTime = t
}

func (h *Hub) WalletBackupKey() string {
	if h.walletBackupKey == "" && h.walletBackupTime != "" && glog.V(1) {
		glog.Info("warning wallet backup key is empty")
	}
	return h.walletBackupKey
}

func (h *Hub) SetWalletBackupKey(key string) {
	h.walletBackupKey = key
}

func (h *Hub) WalletBackupJournal() string {
	if h.walletBackupJournal == "" {
		return filepath.Join(h.WalletBackupPath(), "journal.bolt")
	}
	return h.walletBackupJournal
}

func (h *Hub) SetWalletBackupJournal(name string) {
	h.walletBackupJournal = name
}
