package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 200*time.Millisecond, cfg.DB.SlowQuery)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Telemetry.Tracing)
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "SQLite")
	v.Set("DB_SQLITE_PATH", "/tmp/x.db")
	v.Set("DB_PORT", "6543")
	v.Set("HTTP_PORT", 9090)
	v.Set("DB_AUTO_MIGRATE", "false")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file:/tmp/x.db?_foreign_keys=on&_busy_timeout=5000", cfg.DB.SQLiteDSN())
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestFromViper_DriverNoSoportado(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "oracle")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "catalog", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/catalog?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
