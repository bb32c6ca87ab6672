package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Iris-api/pkg/config"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.EnvDevelopment, cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)

	assert.Equal(t, 30*time.Second, cfg.IRIS.RequestTimeout())
	assert.Equal(t, 2, cfg.IRIS.RetryCount)
	assert.Equal(t, 3, cfg.IRIS.MaxAttempts(), "1 intento + 2 reintentos")
	assert.Equal(t, 2*time.Second, cfg.IRIS.RetryDelay())
	assert.False(t, cfg.IRIS.EnableMock)
}

func TestLoadFrom_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("IRIS_API_BASE_URL", "https://iris.example.gov.pk/api")
	v.Set("IRIS_REQUEST_TIMEOUT_MS", "5000")
	v.Set("IRIS_TIMEOUT_RETRY_COUNT", "0")
	v.Set("IRIS_RETRY_DELAY_MS", "250")
	v.Set("IRIS_ENABLE_MOCK", "true")
	v.Set("STORAGE_DRIVER", "postgres")

	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "https://iris.example.gov.pk/api", cfg.IRIS.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.IRIS.RequestTimeout())
	assert.Equal(t, 1, cfg.IRIS.MaxAttempts())
	assert.Equal(t, 250*time.Millisecond, cfg.IRIS.RetryDelay())
	assert.True(t, cfg.IRIS.EnableMock)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
}

func TestLoadFrom_ValoresInvalidos(t *testing.T) {
	v := viper.New()
	v.Set("IRIS_REQUEST_TIMEOUT_MS", "abc")
	v.Set("IRIS_TIMEOUT_RETRY_COUNT", "9")
	v.Set("IRIS_API_BASE_URL", "ftp://x")
	v.Set("APP_ENV", "qa")

	cfg, err := config.LoadFrom(v)
	require.Error(t, err)
	assert.Nil(t, cfg)

	msg := err.Error()
	assert.Contains(t, msg, "IRIS_REQUEST_TIMEOUT_MS", "reporta el entero inválido")
	assert.Contains(t, msg, "IRIS_TIMEOUT_RETRY_COUNT", "reporta el rango de reintentos")
	assert.Contains(t, msg, "IRIS_API_BASE_URL")
	assert.Contains(t, msg, "APP_ENV")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "iris", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/iris?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", db.ConnectionString(), "DATABASE_URL tiene prioridad")
}
