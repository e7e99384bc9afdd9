package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "file", c.StorageDriver)
	assert.Equal(t, "tastebook.json", c.FileStorePath)
	assert.Equal(t, 100*time.Millisecond, c.LatencyMin)
	assert.Equal(t, 400*time.Millisecond, c.LatencyMax)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "file", cfg.StorageDriver)
	assert.Equal(t, "tastebook.json", cfg.FileStorePath)
}
