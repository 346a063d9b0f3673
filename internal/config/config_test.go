// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "product_manager_data", cfg.Store.Key)
	assert.Equal(t, "pt_BR", cfg.I18n.DefaultLocale)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.True(t, cfg.Server.RateLimit)
	assert.False(t, cfg.Auth.Enabled)
	assert.False(t, cfg.NeedsDatabase())
}

func TestLoadFile_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_BACKEND=Redis\nSTORE_KEY=catalog\nCORS_ALLOW_ORIGINS=https://a.example, https://b.example\n"), 0o644))
	for _, key := range []string{"STORE_BACKEND", "STORE_KEY", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "catalog", cfg.Store.Key)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_BACKEND", "s3")
	_, err := LoadFile("")
	assert.Error(t, err)

	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	cfg, err := LoadFile("")
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.NeedsDatabase())

	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	_, err = LoadFile("")
	assert.NoError(t, err)
}

func TestValidate_StoreKey(t *testing.T) {
	for _, key := range []string{"../produtos", "a/b", `a\b`, "..", "x..y"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv("STORE_KEY", key)
			_, err := LoadFile("")
			assert.Error(t, err)
		})
	}

	t.Setenv("STORE_KEY", "produtos.v2")
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "produtos.v2", cfg.Store.Key)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "catalog", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=catalog sslmode=disable", d.DSN())
}
