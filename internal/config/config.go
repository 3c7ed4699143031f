package config

import (
	"fmt"     // Error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For token lifetime

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Category cache backends
const (
	CacheAuto  = "auto"  // redis when REDIS_ADDR is set, otherwise off
	CacheRedis = "redis" // shared by every replica
	CacheLocal = "local" // per process, single replica deployments only
	CacheOff   = "off"
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	IsProd          bool          // Is production environment
	LogLevel        string        // Logrus level name
	DBDriver        string        // mysql, postgres or sqlite
	DatabaseURL     string        // Driver specific connection string
	JWTSecret       string        // Token signing secret
	JWTAlgorithm    string        // Token signing algorithm
	AccessTokenTTL  time.Duration // Default token lifetime
	CORSOrigins     []string      // Allowed cross-origin request sources
	RedisAddr       string        // Redis server address, empty disables redis
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	RedisPrefix     string        // Namespace for every redis key
	CacheBackend    string        // auto, redis, local or off
	DefaultPageSize int           // Transaction page size when limit is omitted
	MaxPageSize     int           // Upper bound for the limit query parameter
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	cfg := &Config{
		AppPort:      getEnv("APP_PORT", "8000"),
		IsProd:       os.Getenv("IS_PROD") == "true",
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    getEnv("SECRET_KEY", os.Getenv("JWT_SECRET")),
		JWTAlgorithm: strings.ToUpper(getEnv("ALGORITHM", "HS256")),
		CORSOrigins:  getEnvList("BACKEND_CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "ledger"),
		CacheBackend: strings.ToLower(getEnv("CATEGORY_CACHE", CacheAuto)),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	minutes, err := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute
	if cfg.DefaultPageSize, err = getEnvInt("DEFAULT_PAGE_SIZE", 100); err != nil {
		return nil, err
	}
	if cfg.MaxPageSize, err = getEnvInt("MAX_PAGE_SIZE", 1000); err != nil {
		return nil, err
	}

	// Assemble a MySQL DSN from the individual settings when no URL is given
	if cfg.DatabaseURL == "" && cfg.DBDriver == DriverMySQL && os.Getenv("DB_HOST") != "" {
		cfg.DatabaseURL = MySQLDSN(os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_HOST"), getEnv("DB_PORT", "3306"), os.Getenv("DB_NAME"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first missing or inconsistent setting
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: SECRET_KEY is required")
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: unsupported ALGORITHM %q", c.JWTAlgorithm)
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.CacheBackend {
	case CacheAuto, CacheLocal, CacheOff:
	case CacheRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: CATEGORY_CACHE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("config: unsupported CATEGORY_CACHE %q", c.CacheBackend)
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("config: MAX_PAGE_SIZE must be positive")
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("config: DEFAULT_PAGE_SIZE must be between 1 and %d", c.MaxPageSize)
	}
	return nil
}

// MySQLDSN builds the Data Source Name for a MySQL connection
func MySQLDSN(user, password, host, port, name string) string {
	return user + ":" + password + "@tcp(" + host + ":" + port + ")/" + name + "?parseTime=true"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
