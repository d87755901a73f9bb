package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadProdRequiresAllowedOrigins(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("ALLOWED_ORIGINS", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALLOWED_ORIGINS")
}

func TestLoadProdWithAllowedOrigins(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("ALLOWED_ORIGINS", "https://app.assochub.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "https://app.assochub.example", cfg.GetAllowedOrigins())
}
