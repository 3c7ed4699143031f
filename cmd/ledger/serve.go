package main

import (
	"context"   // Shutdown deadline
	"errors"    // Server closed detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal handling
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"household_ledger/internal/api"    // Router and handlers
	"household_ledger/internal/auth"   // Token issuer
	"household_ledger/internal/cache"  // Category listing cache
	"household_ledger/internal/config" // Application configuration
	"household_ledger/internal/db"     // Database connection
	"household_ledger/internal/ledger" // Ledger service
	"household_ledger/internal/store"  // Data access

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"github.com/spf13/cobra"       // Command line interface
)

const (
	shutdownTimeout = 15 * time.Second
	localCacheSize  = 10_000
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Migrate the schema before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	// Connect to the database
	gdb, err := db.Open(cfg, log)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if autoMigrate {
		if err := db.Migrate(gdb, log); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, closeCache, err := newCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		return err
	}
	svc := ledger.NewService(store.New(gdb), c, tokens, log, ledger.WithPageSizes(cfg.DefaultPageSize, cfg.MaxPageSize))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := api.NewRouter(svc, api.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: []string{"127.0.0.1"},
	}, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver}).Info("Server running")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}

// newCache builds the category listing cache selected by CATEGORY_CACHE.
// The returned func releases it.
func newCache(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (cache.Cache, func(), error) {
	backend := cfg.CacheBackend
	if backend == "" || backend == config.CacheAuto {
		backend = config.CacheOff
		if cfg.RedisAddr != "" {
			backend = config.CacheRedis
		}
	}

	switch backend {
	case config.CacheLocal:
		local, err := cache.NewLocal(localCacheSize)
		if err != nil {
			return nil, nil, err
		}
		log.Warn("Using in-process category cache; run a single replica or set REDIS_ADDR")
		return local, local.Close, nil
	case config.CacheRedis:
	default:
		log.Info("Category cache disabled")
		return cache.Nop{}, func() {}, nil
	}

	// Setup Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	log.WithFields(logrus.Fields{"addr": cfg.RedisAddr, "prefix": cfg.RedisPrefix}).Info("Using redis category cache")
	return cache.NewRedis(rdb, cfg.RedisPrefix), func() { _ = rdb.Close() }, nil
}
