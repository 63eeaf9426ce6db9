// Package config reads the settings shared by every command from the
// environment. A .env file in the working directory is loaded first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort       = 3000
	DefaultOutputDir  = "."
	DefaultRumorsFile = "rumors.json"
	DefaultSchedule   = "0 6 * * *"
	DefaultRateLimit  = 10
)

type Config struct {
	FootballDataKey string
	APIFootballKey  string

	// Postgres and Redis are optional.
	PostgresConnString string
	RedisURL           string

	Port       int
	OutputDir  string
	RumorsFile string
	Season     string

	RefreshSchedule string
	// Empty disables the admin endpoints.
	AdminUser     string
	AdminPassword string
	// "Name|URL,Name|URL", empty uses the default feeds.
	NewsFeeds string
	// Requests per minute and client allowed on /api.
	RateLimit int
}

// Load reads the .env file, if there is one, and then the environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() (*Config, error) {
	c := &Config{
		FootballDataKey:    os.Getenv("FOOTBALL_DATA_API_KEY"),
		APIFootballKey:     os.Getenv("API_FOOTBALL_KEY"),
		PostgresConnString: os.Getenv("POSTGRES_CONN_STR"),
		RedisURL:           os.Getenv("REDIS_URL"),
		OutputDir:          getOrDefault("OUTPUT_DIR", DefaultOutputDir),
		RumorsFile:         getOrDefault("RUMORS_FILE", DefaultRumorsFile),
		Season:             os.Getenv("SEASON"),
		RefreshSchedule:    getOrDefault("REFRESH_SCHEDULE", DefaultSchedule),
		AdminUser:          os.Getenv("ADMIN_USER"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		NewsFeeds:          os.Getenv("NEWS_FEEDS"),
	}

	var err error
	if c.Port, err = getInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if c.RateLimit, err = getInt("RATE_LIMIT_PER_MINUTE", DefaultRateLimit); err != nil {
		return nil, err
	}
	if c.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimit)
	}
	return c, nil
}

// AdminEnabled reports whether both admin credentials are set.
func (c *Config) AdminEnabled() bool {
	return c.AdminUser != "" && c.AdminPassword != ""
}

func getOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", key, err)
	}
	return n, nil
}
