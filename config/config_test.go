package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DASH_ADDR", "DASH_LOG_LEVEL", "DASH_LOG_FILE", "DASH_CURRENCY", "DASH_REFRESH", "DASH_SOURCE", "EODHD_API_KEY"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "logs/dash.log", cfg.LogFile)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 5*time.Minute, cfg.Refresh)
	assert.Equal(t, SourceSynthetic, cfg.Source)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DASH_ADDR", "127.0.0.1:9000")
	t.Setenv("DASH_CURRENCY", "eur")
	t.Setenv("DASH_REFRESH", "30")
	t.Setenv("DASH_SOURCE", "Live+Synthetic")
	t.Setenv("EODHD_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 30*time.Second, cfg.Refresh)
	assert.Equal(t, SourceLiveFallback, cfg.Source)
	assert.Equal(t, "key", cfg.EODHDKey)
}

func TestLoadInvalidRefresh(t *testing.T) {
	t.Setenv("DASH_SOURCE", "")
	for _, v := range []string{"abc", "5 minutes", "0", "-30s"} {
		t.Setenv("DASH_REFRESH", v)
		_, err := Load()
		assert.Error(t, err, "DASH_REFRESH=%q", v)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"synthetic", Config{Source: SourceSynthetic, Refresh: time.Minute}, true},
		{"live with key", Config{Source: SourceLive, EODHDKey: "k", Refresh: time.Minute}, true},
		{"live without key", Config{Source: SourceLive, Refresh: time.Minute}, false},
		{"unknown source", Config{Source: "random", Refresh: time.Minute}, false},
		{"no refresh", Config{Source: SourceSynthetic}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
