package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:        "production",
			Port:       "8390",
			JWTSecret:  "secure-secret-at-least-32-chars-long",
			DBPassword: "secure-password",
			DBSSLMode:  "require",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid production config", func(_ *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"default jwt secret in production", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short jwt secret in production", func(c *Config) { c.JWTSecret = "short" }, true},
		{"default db password in production", func(c *Config) { c.DBPassword = "password" }, true},
		{"short jwt secret tolerated in development", func(c *Config) {
			c.Env = "development"
			c.JWTSecret = "dev-secret"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
