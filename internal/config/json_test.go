package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "storage_driver": "sqlite",
  "sqlite_dsn": "json.db",
  "latency_min": "50ms",
  "latency_max": 200000000
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"cmd", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "json.db", cfg.SQLiteDSN)
	assert.Equal(t, 50*time.Millisecond, cfg.LatencyMin)
	assert.Equal(t, 200*time.Millisecond, cfg.LatencyMax)
	assert.Equal(t, "tastebook.json", cfg.FileStorePath, "unset fields keep their defaults")
}

func TestParseJson_NoConfigFlag(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"cmd"}

	cfg := &Config{}
	cfg.LoadDefaults()

	require.NotPanics(t, func() { parseJson(cfg) })
	assert.Equal(t, "file", cfg.StorageDriver)
}

func TestParseJson_MalformedFilePanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"cmd", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()

	require.Panics(t, func() { parseJson(cfg) })
}
