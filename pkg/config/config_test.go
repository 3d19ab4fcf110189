package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsYEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "un-secreto-suficientemente-largo")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "MEMORY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "es-CO", cfg.App.Locale)
}

func TestLoad_SecretCorto(t *testing.T) {
	t.Setenv("JWT_SECRET", "corto")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_DriverDesconocido(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{URL: "http://localhost"},
		JWT:     JWTConfig{Secret: "0123456789abcdef", Expiration: 10},
		Storage: StorageConfig{Driver: "mongo"},
	}
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/shop?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestLoadDB_SinSecretoJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://app@db/shop")

	assert.Equal(t, "postgres://app@db/shop", LoadDB().ConnectionString())
}
