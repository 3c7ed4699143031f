package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:ledger.db")
	t.Setenv("SECRET_KEY", "s3cret")
	for _, key := range []string{"ALGORITHM", "ACCESS_TOKEN_EXPIRE_MINUTES", "BACKEND_CORS_ORIGINS", "REDIS_ADDR", "REDIS_DB", "REDIS_PREFIX", "CATEGORY_CACHE", "DEFAULT_PAGE_SIZE", "MAX_PAGE_SIZE", "APP_PORT", "JWT_SECRET", "DB_HOST"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 100, cfg.DefaultPageSize)
	assert.Equal(t, 1000, cfg.MaxPageSize)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "ledger", cfg.RedisPrefix)
	assert.Equal(t, CacheAuto, cfg.CacheBackend)
}

func TestLoadConfigOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "90")
	t.Setenv("BACKEND_CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_PREFIX", "staging")
	t.Setenv("CATEGORY_CACHE", "Redis")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 90*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "staging", cfg.RedisPrefix)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
}

func TestLoadConfigJWTSecretFallback(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SECRET_KEY", "")
	t.Setenv("JWT_SECRET", "legacy")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.JWTSecret)
}

func TestLoadConfigBuildsMySQLDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_USER", "ledger")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "kakeibo")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ledger:pw@tcp(db:3307)/kakeibo?parseTime=true", cfg.DatabaseURL)
}

func TestLoadConfigRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"missing secret", "SECRET_KEY", "", "SECRET_KEY"},
		{"unknown driver", "DB_DRIVER", "oracle", "DB_DRIVER"},
		{"unknown algorithm", "ALGORITHM", "RS256", "ALGORITHM"},
		{"non numeric ttl", "ACCESS_TOKEN_EXPIRE_MINUTES", "soon", "ACCESS_TOKEN_EXPIRE_MINUTES"},
		{"zero ttl", "ACCESS_TOKEN_EXPIRE_MINUTES", "0", "ACCESS_TOKEN_EXPIRE_MINUTES"},
		{"page size above max", "DEFAULT_PAGE_SIZE", "5000", "DEFAULT_PAGE_SIZE"},
		{"missing url", "DATABASE_URL", "", "DATABASE_URL"},
		{"unknown cache", "CATEGORY_CACHE", "memcached", "CATEGORY_CACHE"},
		{"redis cache without address", "CATEGORY_CACHE", "redis", "REDIS_ADDR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
