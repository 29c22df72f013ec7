package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Icon storage drivers
const (
	IconDriverLocal = "local"
	IconDriverS3    = "s3"
)

// DefaultIconURL is used when an author skips the icon upload.
const DefaultIconURL = "https://pub-5e7a518e1ac64fa28ad8bd8a857d269a.r2.dev/USDC%20TRANSFER.png"

// Config is the service configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Sessions StorageConfig  `yaml:"sessions"`
	Solana   SolanaConfig   `yaml:"solana"`
	Telegram TelegramConfig `yaml:"telegram"`
	Icons    IconsConfig    `yaml:"icons"`
	Auth     AuthConfig     `yaml:"auth"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`
	BaseURL      string        `yaml:"base_url"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// StorageConfig selects and configures a key-value backend.
// An empty Driver in the sessions block means "same as storage".
type StorageConfig struct {
	Driver        string `yaml:"driver"`
	BoltPath      string `yaml:"bolt_path"`
	PostgresURL   string `yaml:"postgres_url"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// SolanaConfig holds the token and RPC settings used to build transfers.
type SolanaConfig struct {
	RPCURL      string `yaml:"rpc_url"`
	Mint        string `yaml:"mint"`
	TokenSymbol string `yaml:"token_symbol"`
	Decimals    int32  `yaml:"decimals"`
}

// TelegramConfig holds bot credentials. The bot is disabled without a token.
type TelegramConfig struct {
	BotToken       string `yaml:"bot_token"`
	SecretToken    string `yaml:"secret_token"`
	DefaultIconURL string `yaml:"default_icon_url"`
	ShareBaseURL   string `yaml:"share_base_url"`
}

// IconsConfig configures where uploaded icons are written.
type IconsConfig struct {
	Driver          string `yaml:"driver"`
	Dir             string `yaml:"dir"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

// AuthConfig guards the authoring routes. Auth is off when JWTSecret is empty.
type AuthConfig struct {
	JWTSecret         string        `yaml:"jwt_secret"`
	AdminUsername     string        `yaml:"admin_username"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
}

// TracingConfig toggles the stdout trace exporter.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Enabled reports whether admin routes require a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// SessionStorage returns the effective session backend settings.
func (c Config) SessionStorage() StorageConfig {
	if c.Sessions.Driver == "" {
		return c.Storage
	}
	return c.Sessions
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:         8080,
			BaseURL:      "http://localhost:8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Storage: StorageConfig{
			Driver:   DriverBolt,
			BoltPath: "data/usdc-actions.db",
		},
		Solana: SolanaConfig{
			RPCURL:      "https://api.mainnet-beta.solana.com",
			Mint:        "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			TokenSymbol: "USDC",
			Decimals:    6,
		},
		Telegram: TelegramConfig{
			DefaultIconURL: DefaultIconURL,
			ShareBaseURL:   "https://dial.to",
		},
		Icons: IconsConfig{
			Driver: IconDriverLocal,
			Dir:    "data/icons",
			Region: "auto",
		},
		Auth: AuthConfig{
			AdminUsername: "admin",
			TokenTTL:      24 * time.Hour,
		},
	}
}

// Load reads the YAML file at path (if any) over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			interpolated := interpolateEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	cfg.Icons.PublicBaseURL = strings.TrimRight(cfg.Icons.PublicBaseURL, "/")
	if cfg.Icons.PublicBaseURL == "" && cfg.Icons.Driver == IconDriverLocal {
		cfg.Icons.PublicBaseURL = cfg.Server.BaseURL + "/icons"
	}

	return cfg, nil
}

// Validate checks that driver specific settings are present.
func (c Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if err := c.Storage.validate("storage"); err != nil {
		return err
	}
	if c.Sessions.Driver != "" {
		if err := c.Sessions.validate("sessions"); err != nil {
			return err
		}
	}
	if c.Telegram.BotToken != "" && c.Telegram.SecretToken == "" {
		return fmt.Errorf("telegram.secret_token is required when the bot is enabled")
	}
	switch c.Icons.Driver {
	case IconDriverLocal:
		if c.Icons.Dir == "" {
			return fmt.Errorf("icons.dir is required for the local driver")
		}
	case IconDriverS3:
		if c.Icons.Bucket == "" || c.Icons.PublicBaseURL == "" {
			return fmt.Errorf("icons.bucket and icons.public_base_url are required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown icons.driver %q", c.Icons.Driver)
	}
	if c.Auth.Enabled() && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("auth.admin_password_hash is required when auth.jwt_secret is set")
	}
	return nil
}

func (s StorageConfig) validate(section string) error {
	switch s.Driver {
	case DriverMemory:
	case DriverBolt:
		if s.BoltPath == "" {
			return fmt.Errorf("%s.bolt_path is required for the bolt driver", section)
		}
	case DriverPostgres:
		if s.PostgresURL == "" {
			return fmt.Errorf("%s.postgres_url is required for the postgres driver", section)
		}
	case DriverRedis:
		if s.RedisAddr == "" {
			return fmt.Errorf("%s.redis_addr is required for the redis driver", section)
		}
	default:
		return fmt.Errorf("unknown %s.driver %q", section, s.Driver)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Server.BaseURL, "BASE_URL")
	if err := setInt(&cfg.Server.Port, "PORT"); err != nil {
		return err
	}

	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.BoltPath, "BOLT_PATH")
	setString(&cfg.Storage.PostgresURL, "DATABASE_URL")
	setString(&cfg.Storage.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Storage.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.Sessions.Driver, "SESSION_STORAGE_DRIVER")
	if cfg.Sessions.Driver != "" {
		// Connection settings for sessions default to the shared ones.
		if cfg.Sessions.PostgresURL == "" {
			cfg.Sessions.PostgresURL = cfg.Storage.PostgresURL
		}
		if cfg.Sessions.RedisAddr == "" {
			cfg.Sessions.RedisAddr = cfg.Storage.RedisAddr
			cfg.Sessions.RedisPassword = cfg.Storage.RedisPassword
		}
		if cfg.Sessions.BoltPath == "" {
			cfg.Sessions.BoltPath = cfg.Storage.BoltPath
		}
	}

	setString(&cfg.Solana.RPCURL, "SOLANA_RPC")

	setString(&cfg.Telegram.BotToken, "BOT_TOKEN")
	setString(&cfg.Telegram.SecretToken, "TELEGRAM_SECRET_TOKEN")

	setString(&cfg.Icons.Driver, "ICON_DRIVER")
	setString(&cfg.Icons.Dir, "ICON_DIR")
	setString(&cfg.Icons.Bucket, "ICON_BUCKET")
	setString(&cfg.Icons.Region, "ICON_REGION")
	setString(&cfg.Icons.Endpoint, "ICON_ENDPOINT")
	setString(&cfg.Icons.AccessKeyID, "ICON_ACCESS_KEY_ID")
	setString(&cfg.Icons.SecretAccessKey, "ICON_SECRET_ACCESS_KEY")
	setString(&cfg.Icons.PublicBaseURL, "PUBLIC_R2_URL")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.AdminUsername, "ADMIN_USERNAME")
	setString(&cfg.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")

	if v, ok := os.LookupEnv("TRACING_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse TRACING_ENABLED: %w", err)
		}
		cfg.Tracing.Enabled = enabled
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolateEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func interpolateEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match // Leave unresolved if not set.
	})
}
