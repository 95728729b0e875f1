package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Supported credential store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	StoreDriver string

	MongoURI             string
	MongoDatabase        string
	MongoUsersCollection string
	DatabaseURL          string
	SQLitePath           string

	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	BcryptCost  int
	CORSOrigins []string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:                 fallback(os.Getenv("PORT"), "3000"),
		StoreDriver:          strings.ToLower(fallback(os.Getenv("STORE_DRIVER"), DriverMongo)),
		MongoURI:             fallback(os.Getenv("MONGODB_URI"), "mongodb://localhost:27017"),
		MongoDatabase:        fallback(os.Getenv("MONGODB_DATABASE"), "authgate"),
		MongoUsersCollection: fallback(os.Getenv("MONGODB_USERS_COLLECTION"), "users"),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:           fallback(os.Getenv("SQLITE_PATH"), "authgate.db"),
		JWTSecret:            strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:            fallback(os.Getenv("JWT_ISSUER"), "authgate"),
		CORSOrigins:          parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:             strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogFormat:            strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "json")),
	}

	ttlMinutes, err := strconv.Atoi(fallback(os.Getenv("JWT_TTL_MINUTES"), "60"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_TTL_MINUTES: %w", err)
	}
	if ttlMinutes <= 0 {
		return Config{}, errors.New("JWT_TTL_MINUTES must be positive")
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	cost, err := strconv.Atoi(fallback(os.Getenv("BCRYPT_COST"), "10"))
	if err != nil {
		return Config{}, fmt.Errorf("BCRYPT_COST: %w", err)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	cfg.BcryptCost = cost

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	switch cfg.StoreDriver {
	case DriverMongo, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
