package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, FallbackBestEffort, cfg.FallbackPolicy)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.RemoteConfigured())
}

func TestRemoteConfiguredNeedsBothValues(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.RemoteConfigured(), "URL alone must not enable remote mode")

	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.RemoteConfigured())
}

func TestInvalidFallbackPolicyRejected(t *testing.T) {
	t.Setenv("FALLBACK_POLICY", "sometimes")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestFailLoudlyPolicyAccepted(t *testing.T) {
	t.Setenv("FALLBACK_POLICY", FallbackFailLoudly)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, FallbackFailLoudly, cfg.FallbackPolicy)
}
