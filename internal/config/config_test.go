package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("UPLOAD_PUBLIC_BASE_URL", "https://cdn.example.com/")

	cfg := Load()
	assert.Equal(t, "backoffice", cfg.AppName)
	assert.False(t, cfg.AuthCookieSecure)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "https://cdn.example.com", cfg.Upload.PublicBaseURL)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
}

func TestLoadProductionForcesSecureCookie(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_COOKIE_SECURE", "false")

	cfg := Load()
	assert.True(t, cfg.AuthCookieSecure)
	assert.True(t, cfg.IsProduction())
}

func TestDatabaseProjection(t *testing.T) {
	cfg := Config{DBType: "sqlite", DBSQLitePath: "test.db", DBMaxOpenConn: 3}
	dbCfg := cfg.Database()
	assert.Equal(t, "sqlite", dbCfg.Type)
	assert.Equal(t, "test.db", dbCfg.SQLitePath)
	assert.Equal(t, 3, dbCfg.MaxOpenConn)
}

func TestCatalogConfigHolderReadsFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte("catalog:\n  defaultPageSize: 20\n  maxPageSize: 100\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backoffice.yml"), body, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	holder, err := NewCatalogConfigHolder()
	require.NoError(t, err)
	assert.Equal(t, CatalogConfig{DefaultPageSize: 20, MaxPageSize: 100}, holder.Get())
}

func TestCatalogConfigHolderDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	holder, err := NewCatalogConfigHolder()
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogConfig(), holder.Get())
}

func TestValidateCatalogConfig(t *testing.T) {
	assert.Error(t, validateCatalogConfig(CatalogConfig{DefaultPageSize: 0, MaxPageSize: 10}))
	assert.Error(t, validateCatalogConfig(CatalogConfig{DefaultPageSize: 20, MaxPageSize: 10}))
	assert.NoError(t, validateCatalogConfig(DefaultCatalogConfig()))
}
