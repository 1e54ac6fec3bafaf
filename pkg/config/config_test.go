package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lavanderia-sync/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "lavanderia-sync", cfg.App.Name)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.ReconcileDelay)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_LeeLasVariablesDeEntorno(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abcdefg.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SYNC_RECONCILE_DELAY_MS", "250")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://abcdefg.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, "anon-key", cfg.Supabase.AnonKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.ReconcileDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Supabase.Validate())
}

func TestSupabaseConfig_Validate(t *testing.T) {
	assert.Error(t, config.SupabaseConfig{}.Validate())
	assert.Error(t, config.SupabaseConfig{URL: "https://x.supabase.co"}.Validate())
	assert.NoError(t, config.SupabaseConfig{URL: "https://x.supabase.co", AnonKey: "k"}.Validate())
}
