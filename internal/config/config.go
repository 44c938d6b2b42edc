// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Server holds HTTP server settings
type Server struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
}

// Database holds store connection settings
type Database struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// PostgresDSN builds a keyword/value connection string
func (d Database) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// Redis holds seed lock connection settings. An empty Addr disables Redis.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Config is the API server configuration
type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	LogLevel logrus.Level
}

// Client is the dashboard client configuration
type Client struct {
	APIURL   string
	LogLevel logrus.Level
}

// loadDotEnv reads .env into the process environment when present
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func parseLogLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Load reads the API server configuration
func Load() (*Config, error) {
	loadDotEnv()

	level, err := parseLogLevel()
	if err != nil {
		return nil, err
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}

	cfg := &Config{
		Server: Server{
			Port:           getEnv("PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Database: Database{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:       getEnv("DB_HOST", ""),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", ""),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", ""),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "mining_pools.db"),
		},
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		LogLevel: level,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for missing or malformed values
func (c *Config) Validate() error {
	if _, err := strconv.ParseUint(c.Server.Port, 10, 16); err != nil {
		return fmt.Errorf("PORT must be a valid port number, got %q", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		var missing []string
		if c.Database.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("postgres driver requires %s", strings.Join(missing, ", "))
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("sqlite driver requires SQLITE_PATH")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.Redis.DB < 0 {
		return errors.New("REDIS_DB cannot be negative")
	}
	return nil
}

// LoadClient reads the dashboard client configuration
func LoadClient() (*Client, error) {
	return LoadClientWithURL("")
}

// LoadClientWithURL reads the dashboard client configuration. A non-empty
// apiURL replaces MINING_POOLS_API_URL; every other setting still comes from
// the environment.
func LoadClientWithURL(apiURL string) (*Client, error) {
	loadDotEnv()

	level, err := parseLogLevel()
	if err != nil {
		return nil, err
	}

	if apiURL == "" {
		apiURL = getEnv("MINING_POOLS_API_URL", "http://localhost:8080")
	}
	cfg := &Client{
		APIURL:   strings.TrimRight(apiURL, "/"),
		LogLevel: level,
	}
	if err := ValidateAPIURL(cfg.APIURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateAPIURL checks that raw is an absolute http(s) URL
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("MINING_POOLS_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("MINING_POOLS_API_URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("MINING_POOLS_API_URL must include a host, got %q", raw)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
