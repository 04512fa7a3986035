package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173")
	t.Setenv("PORT", "")
	t.Setenv("DEBUG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Debug)
}

func TestLoad_ParsesOriginList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Debug)
}
