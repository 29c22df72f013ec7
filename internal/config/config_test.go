package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", cfg.Solana.Mint)
	assert.Equal(t, int32(6), cfg.Solana.Decimals)
	assert.Equal(t, DefaultIconURL, cfg.Telegram.DefaultIconURL)
	assert.Equal(t, "http://localhost:8080/icons", cfg.Icons.PublicBaseURL)
	assert.False(t, cfg.Auth.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLWithInterpolation(t *testing.T) {
	t.Setenv("TEST_USDC_BUCKET", "icons-bucket")

	path := writeConfig(t, `
server:
  port: 9090
  base_url: https://actions.example.com/
  read_timeout: 5s
storage:
  driver: memory
icons:
  driver: s3
  bucket: ${TEST_USDC_BUCKET}
  public_base_url: https://pub.example.com/
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://actions.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "icons-bucket", cfg.Icons.Bucket)
	assert.Equal(t, "https://pub.example.com", cfg.Icons.PublicBaseURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_STORAGE_DRIVER", "redis")
	t.Setenv("SOLANA_RPC", "https://rpc.example.com")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("TRACING_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.SessionStorage().RedisAddr)
	assert.Equal(t, "https://rpc.example.com", cfg.Solana.RPCURL)
	assert.True(t, cfg.Auth.Enabled())
	assert.True(t, cfg.Tracing.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := Load("")
	assert.Error(t, err)
}

func TestInterpolateEnvVars_LeavesUnsetVariables(t *testing.T) {
	t.Setenv("TEST_USDC_SET", "value")

	out := interpolateEnvVars("a: ${TEST_USDC_SET}\nb: ${TEST_USDC_SURELY_UNSET}")
	assert.Equal(t, "a: value\nb: ${TEST_USDC_SURELY_UNSET}", out)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown storage driver",
			mutate:  func(c *Config) { c.Storage.Driver = "etcd" },
			wantErr: "unknown storage.driver",
		},
		{
			name:    "postgres without url",
			mutate:  func(c *Config) { c.Storage.Driver = DriverPostgres },
			wantErr: "storage.postgres_url",
		},
		{
			name:    "bot without secret",
			mutate:  func(c *Config) { c.Telegram.BotToken = "123:abc" },
			wantErr: "telegram.secret_token",
		},
		{
			name:    "s3 icons without bucket",
			mutate:  func(c *Config) { c.Icons.Driver = IconDriverS3 },
			wantErr: "icons.bucket",
		},
		{
			name:    "auth without password hash",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "secret" },
			wantErr: "auth.admin_password_hash",
		},
		{
			name:    "redis sessions without address",
			mutate:  func(c *Config) { c.Sessions.Driver = DriverRedis },
			wantErr: "sessions.redis_addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
