package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10, cfg.DefaultTraversalDepth)
	assert.Equal(t, 0, cfg.MaxNodes)
	assert.True(t, cfg.EnableCORS)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DEFAULT_TRAVERSAL_DEPTH", "5")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 5, cfg.DefaultTraversalDepth)
	assert.False(t, cfg.EnableCORS)
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{DefaultTraversalDepth: 0}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DefaultTraversalDepth: 10, MaxNodes: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DefaultTraversalDepth: 10}
	assert.NoError(t, cfg.Validate())
}
