package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	assert.Equal(t, ":23234", cfg.Address)
	assert.Equal(t, 30*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, 60, cfg.TickRate)
}

func TestNewSSHServerCreatesHostKey(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "host_key")

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = keyPath

	srv, err := NewSSHServer(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	_, err = os.Stat(keyPath)
	assert.NoError(t, err, "host key not generated")
}
