package integration

import (
	"time"

	"github.com/bizmatters/usdc-actions/internal/auth"
	"github.com/bizmatters/usdc-actions/internal/config"
	"github.com/bizmatters/usdc-actions/tests/helpers"
)

func authHash(password string) (string, error) {
	return auth.HashPassword(password)
}

func authConfig(hash string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:         "integration-secret",
		AdminUsername:     helpers.DefaultTestAdmin.Username,
		AdminPasswordHash: hash,
		TokenTTL:          time.Hour,
	}
}
