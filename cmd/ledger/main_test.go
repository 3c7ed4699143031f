package main

import (
	"context"
	"testing"

	"household_ledger/internal/cache"
	"household_ledger/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFormatter(t *testing.T) {
	log, err := newLogger(&config.Config{LogLevel: "debug"})
	require.NoError(t, err)
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log, err = newLogger(&config.Config{LogLevel: "warn", IsProd: true})
	require.NoError(t, err)
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := newLogger(&config.Config{LogLevel: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestNewCacheIsOffWithoutRedis(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	for _, backend := range []string{"", config.CacheAuto, config.CacheOff} {
		c, closeCache, err := newCache(context.Background(), &config.Config{CacheBackend: backend}, log)
		require.NoError(t, err)
		closeCache()
		assert.IsType(t, cache.Nop{}, c, backend)
	}
}

func TestNewCacheLocalWhenRequested(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	c, closeCache, err := newCache(context.Background(), &config.Config{CacheBackend: config.CacheLocal}, log)
	require.NoError(t, err)
	defer closeCache()
	assert.IsType(t, &cache.Local{}, c)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestNewCacheUsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	log, _ := logtest.NewNullLogger()

	c, closeCache, err := newCache(context.Background(), &config.Config{RedisAddr: mr.Addr(), RedisPrefix: "ledger"}, log)
	require.NoError(t, err)
	defer closeCache()
	assert.IsType(t, &cache.Redis{}, c)

	_, err = c.Bump(context.Background(), "gen")
	require.NoError(t, err)
	assert.True(t, mr.Exists("ledger:gen"))
}

func TestNewCacheFailsWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	log, _ := logtest.NewNullLogger()
	_, _, err := newCache(context.Background(), &config.Config{RedisAddr: addr}, log)
	assert.Error(t, err)
}

func TestCommandsAreRegistered(t *testing.T) {
	for _, name := range []string{"serve", "migrate"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, serveCmd.Flags().Lookup("migrate"))
}
