package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:           "8080",
		StorageBackend: StoragePostgres,
		DBPassword:     "password",
		DBSSLMode:      "disable",
		Env:            "development",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("Valid Development", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("Missing Port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Unknown Backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.StorageBackend = "cassandra"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Memory Backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.StorageBackend = StorageMemory
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Production Default Password Rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Production Strong Password", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.DBPassword = "s0me-l0ng-r4ndom-secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Production Memory Backend Allowed With Warning", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.StorageBackend = StorageMemory
		cfg.DBPassword = ""
		assert.NoError(t, cfg.Validate())
	})
}
