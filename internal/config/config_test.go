package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	content := `
env: "prod"
store_path: "/var/lib/plasma/store.json"
admins:
  - "yon"
  - "root"
http_server:
  addresshttp: "0.0.0.0:9090"
  timeouthttp: "10s"
  idle_timeout: "120s"
jwttoken:
  jwt_secret_key: "super-secret"
  token_ttl: "12h"
links:
  check_delay: "3s"
stats:
  refresh_interval: "5m"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var cfg Config
	require.NoError(t, cleanenv.ReadConfig(path, &cfg))

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "/var/lib/plasma/store.json", cfg.StorePath)
	assert.Equal(t, []string{"yon", "root"}, cfg.Admins)
	assert.Equal(t, "0.0.0.0:9090", cfg.AddressHTTP)
	assert.Equal(t, 10*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, "super-secret", cfg.JWTSecretKey)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3*time.Second, cfg.CheckDelay)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
}

func TestReadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: \"local\"\n"), 0o644))

	var cfg Config
	require.NoError(t, cleanenv.ReadConfig(path, &cfg))

	assert.Equal(t, []string{"yon"}, cfg.Admins)
	assert.Equal(t, "localhost:8080", cfg.AddressHTTP)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "https://discord.gg/g97DXFbcCW", cfg.DiscordInvite)
	assert.Equal(t, "https://www.youtube.com/@yonyonsyoner", cfg.ChannelURL)
	assert.Equal(t, 2*time.Second, cfg.CheckDelay)
	assert.Equal(t, time.Second, cfg.RedirectDelay)
	assert.Equal(t, 2*time.Minute, cfg.RefreshInterval)
	// Пустой адрес redis означает запуск без кеша.
	assert.Empty(t, cfg.AddressRedis)
}

func TestConfig_String(t *testing.T) {
	cfg := Config{
		Env:       "local",
		StorePath: "./data/store.json",
		Admins:    []string{"yon"},
	}

	s := cfg.String()
	assert.Contains(t, s, "Env: local")
	assert.Contains(t, s, "StorePath: ./data/store.json")
}
