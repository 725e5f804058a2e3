package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/todo-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver          string
	DBPath            string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// SecretKey signs both API tokens and session cookies.
	SecretKey  string
	TokenTTL   time.Duration
	BcryptCost int

	RateLimitDefault string
	RateLimitUsers   string
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address is the client IP.
	TrustedProxies []string

	SeedData           bool
	TodoOwnershipCheck bool
}

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBPath:            getEnv("DB_PATH", "todos.db"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBUser:            getEnv("DB_USER", "todouser"),
		DBPassword:        getEnv("DB_PASSWORD", "todopassword"),
		DBName:            getEnv("DB_NAME", "todos"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),

		SecretKey:  getEnv("SECRET_KEY", "default-secret-key-change-me"),
		TokenTTL:   getEnvDuration("TOKEN_TTL", constants.DefaultTokenTTL),
		BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),

		RateLimitDefault: getEnv("RATE_LIMIT_DEFAULT", "100/hour"),
		RateLimitUsers:   getEnv("RATE_LIMIT_USERS", "40/day"),
		TrustedProxies:   getEnvList("TRUSTED_PROXIES"),

		SeedData:           getEnvBool("SEED_DATA", true),
		TodoOwnershipCheck: getEnvBool("TODO_OWNERSHIP_CHECK", false),
	}
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma-separated variable, dropping blanks.
func getEnvList(key string) []string {
	var values []string
	for _, value := range strings.Split(os.Getenv(key), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}

// getEnvDuration accepts Go durations ("10m") or plain seconds ("600").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
