package utils

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHub_Defaults(t *testing.T) {
	h := &Hub{}
	assert.Equal(t, DefaultGRPCPort, h.GRPCPort())
	assert.Equal(t, uint64(DefaultProtocolVersion), h.ProtocolVersion())
	assert.Equal(t, DefaultCryptoThreads, h.CryptoThreads())
	assert.Equal(t, time.Duration(0), h.NativeTimeout())
	assert.Equal(t, filepath.Join(BaseDir(), "backups"), h.WalletBackupPath())
	assert.Equal(t, filepath.Join(BaseDir(), "backups", "journal.bolt"), h.WalletBackupJournal())
}

func TestHub_Set(t *testing.T) {
	h := &Hub{}
	h.SetGRPCPort(50052)
	h.SetProtocolVersion(1)
	h.SetCryptoThreads(2)
	h.SetNativeTimeout(time.Minute)
	h.SetWalletBackupPath("/tmp/backups")
	h.SetWalletBackupTime("04:30")
	h.SetWalletBackupKey("key")

	assert.Equal(t, 50052, h.GRPCPort())
	assert.Equal(t, uint64(1), h.ProtocolVersion())
	assert.Equal(t, 2, h.CryptoThreads())
	assert.Equal(t, time.Minute, h.NativeTimeout())
	assert.Equal(t, "04:30", h.WalletBackupTime())
	assert.Equal(t, "key", h.WalletBackupKey())
	assert.Equal(t, "/tmp/backups/journal.bolt", h.WalletBackupJournal())

	h.SetWalletBackupJournal("/var/journal.bolt")
	assert.Equal(t, "/var/journal.bolt", h.WalletBackupJournal())
}

func TestBaseDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester", HomeDir())
	assert.Equal(t, "/home/tester/.indy_client/bridge", BaseDir())
}
