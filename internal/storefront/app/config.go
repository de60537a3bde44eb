package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/storefront/pkg/cryptox"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 3000)
	APIPrefix string // Prefix for API routes (default: /api/v1)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseURL    string // DSN for the selected driver (default: storefront.db)

	JWTSecret    string        // Required outside dev: HS256 signing secret
	JWTIssuer    string        // Optional: issuer claim for tokens (default: storefront)
	JWTExpiresIn time.Duration // Session token lifetime (default: 24h)
	BcryptCost   int           // bcrypt work factor (default: 10)

	CacheDriver   string        // memory or redis (default: memory)
	RedisAddr     string        // Redis address when CacheDriver is redis (default: localhost:6379)
	RedisPassword string        // Optional
	RedisDB       int           // Redis database number (default: 0)
	CacheTTL      time.Duration // Role cache entry lifetime (default: 10m)
	CacheRefresh  time.Duration // Role cache warm interval (default: 5m)

	CORSOrigins         []string      // Allowed browser origins (default: *)
	PhoneRegion         string        // Region for phone numbers without a country code (default: US)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first; it never overrides variables that are
// already set.
func LoadConfig() Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 3000),
		APIPrefix: getEnvOrDefault("API_PREFIX", "/api/v1"),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:    getEnvOrDefault("DATABASE_URL", "storefront.db"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTIssuer:    getEnvOrDefault("JWT_ISSUER", "storefront"),
		JWTExpiresIn: getEnvDurationOrDefault("JWT_EXPIRES_IN", 24*time.Hour),
		BcryptCost:   getEnvIntOrDefault("BCRYPT_COST", cryptox.DefaultCost),

		CacheDriver:   strings.ToLower(getEnvOrDefault("CACHE_DRIVER", "memory")),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),
		CacheTTL:      getEnvDurationOrDefault("CACHE_TTL", 10*time.Minute),
		CacheRefresh:  getEnvDurationOrDefault("CACHE_REFRESH_INTERVAL", 5*time.Minute),

		CORSOrigins:         getEnvListOrDefault("CORS_ORIGINS", []string{"*"}),
		PhoneRegion:         strings.ToUpper(getEnvOrDefault("PHONE_REGION", "US")),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// IsDev reports whether the service runs in the development environment.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.Env, "dev") || strings.EqualFold(c.Env, "development")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Day suffix, as in JWT_EXPIRES_IN=7d
	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour
		}
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
