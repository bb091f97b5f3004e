package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevelopmentConfig(t *testing.T) {
	cfg, err := NewConfig("development.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateAndSetDefaults())

	assert.Equal(t, SQLiteExtensionName, cfg.Database.Index.DBExtensionName)
	assert.Equal(t, SQLiteInMemory, cfg.Database.Index.DatabaseName)
	assert.Equal(t, 200*time.Millisecond, cfg.Exporter.ExportDelay)
	assert.Equal(t, AuthenticationMethodBasic, cfg.Security.Authentication.Method)
	assert.True(t, cfg.Security.Authorizations.Enabled)
	assert.Equal(t, "demo", cfg.Security.InitialAdmin.Username)
	assert.Equal(t, time.Hour, cfg.DocumentStore.DefaultTimeToLive)
}

func TestLoadPostgresConfig(t *testing.T) {
	cfg, err := NewConfig(filepath.Join(".", "development-postgres.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateAndSetDefaults())

	assert.Equal(t, PostgresExtensionName, cfg.Database.Index.DBExtensionName)
	assert.Equal(t, "127.0.0.1:5432", cfg.Database.Index.ConnectAddr)
	assert.True(t, cfg.Security.MultiTenancy.ChecksEnabled)
	assert.Equal(t, 10000, cfg.Exporter.BufferSize)
}

func TestEmptyConfigGetsDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.ValidateAndSetDefaults())

	assert.Equal(t, SQLiteExtensionName, cfg.Database.Index.DBExtensionName)
	assert.Equal(t, "0.0.0.0:8080", cfg.ApiService.HttpServer.Address)
	assert.Equal(t, 100*time.Millisecond, cfg.Exporter.ExportDelay)
	assert.Equal(t, 20*time.Millisecond, cfg.BatchOperation.ItemInterval)
	assert.Equal(t, DefaultAdminPassword, cfg.Security.InitialAdmin.Password)
	assert.NotContains(t, cfg.String(), "Password")
}

func TestInvalidConfigsAreRejected(t *testing.T) {
	cases := map[string]*Config{
		"postgres without address": {Database: DatabaseConfig{Index: &SQL{
			DBExtensionName: PostgresExtensionName, DatabaseName: "db", User: "u",
		}}},
		"missing extension": {Database: DatabaseConfig{Index: &SQL{DatabaseName: "db"}}},
		"unknown authentication": {Security: SecurityConfig{
			Authentication: AuthenticationConfig{Method: "oidc"},
		}},
		"authorizations without authentication": {Security: SecurityConfig{
			Authentication: AuthenticationConfig{Method: AuthenticationMethodNone},
			Authorizations: AuthorizationsConfig{Enabled: true},
		}},
		"negative export delay": {Exporter: ExporterConfig{ExportDelay: -time.Second}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.ValidateAndSetDefaults())
		})
	}
}
