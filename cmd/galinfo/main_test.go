package main

import (
	stdbytes "bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/backend/null"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reg, err := gal.NewRegistry(null.Plugin())
	require.NoError(t, err)
	cmd := newRootCmd(reg)
	var out, errOut stdbytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(t.Context())
	t.Cleanup(func() { gal.SetLogger(nil) })
	return out.String(), err
}

func TestBackends(t *testing.T) {
	out, err := run(t, "backends")
	require.NoError(t, err)
	assert.Contains(t, out, "null")
	assert.Contains(t, out, null.Name)
	assert.Contains(t, out, "-100")
	assert.Contains(t, out, "^1.0.0")
}

func TestDevices(t *testing.T) {
	out, err := run(t, "devices", "--limits")
	require.NoError(t, err)
	assert.Contains(t, out, "Test (null)")
	assert.Contains(t, out, "device 0:")
	assert.Contains(t, out, "queue family 1")
	assert.Contains(t, out, "max color attachments")
}

func TestDevicesUnknownBackend(t *testing.T) {
	_, err := run(t, "devices", "--backend", "metal")
	assert.ErrorIs(t, err, gal.ErrBackendNotFound)
}

func TestFormats(t *testing.T) {
	_, err := run(t, "formats")
	assert.Error(t, err, "formats needs a backend")

	out, err := run(t, "formats", "-b", "null")
	require.NoError(t, err)
	assert.Contains(t, out, "RGBA8Unorm")
	assert.Contains(t, out, "D32Float")

	_, err = run(t, "formats", "-b", "null", "--device", "3")
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok (")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gal.toml")
	require.NoError(t, os.WriteFile(path, []byte("heap_size = 3\n"), 0o600))
	_, err := run(t, "--config", path, "devices")
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)

	require.NoError(t, os.WriteFile(path, []byte("heap_size = 1048576\nheap_granularity = 256\n"), 0o600))
	_, err = run(t, "--config", path, "check")
	require.NoError(t, err)
}
