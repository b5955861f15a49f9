// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database selects and addresses the results database.
type Database struct {
	// Type is "postgres" or "sqlite".
	Type string

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// SQLitePath is a file path or a modernc DSN such as "file::memory:".
	SQLitePath string

	// Debug logs every query.
	Debug bool
}

// Config holds the API server configuration.
type Config struct {
	Database

	// JWT signing secret (required).
	JWTSecret string

	// Server
	Port       string
	TLSDomains []string
}

// IngestConfig holds configuration used by the ingestion tools.
type IngestConfig struct {
	Database
}

// Load reads server configuration from a .env file (if present) and then
// from environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")

	cfg := &Config{
		Database:   readDatabase(v),
		JWTSecret:  v.GetString("JWT_SECRET"),
		Port:       v.GetString("PORT"),
		TLSDomains: splitTrimmed(v.GetString("TLS_DOMAINS")),
	}

	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// LoadIngest reads the configuration shared by the ingestion tools.
func LoadIngest() (*IngestConfig, error) {
	cfg := &IngestConfig{Database: readDatabase(newViper())}
	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readDatabase(v *viper.Viper) Database {
	v.SetDefault("DATABASE_TYPE", "postgres")
	v.SetDefault("DB_USER", "elections")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "elections")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "elections.db")
	v.SetDefault("DEBUG", false)

	return Database{
		Type:        strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_TYPE"))),
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		SQLitePath:  v.GetString("SQLITE_PATH"),
		Debug:       v.GetBool("DEBUG"),
	}
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (d Database) PostgresDSN() string {
	if d.DatabaseURL != "" {
		return d.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.DBUser,
		d.DBPass,
		d.DBHost,
		d.DBPort,
		d.DBName,
		d.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (d Database) validate() error {
	switch d.Type {
	case "postgres":
		if d.DatabaseURL == "" && d.DBPass == "" {
			return errors.New("config: DATABASE_URL or DB_PASS must be set")
		}
	case "sqlite":
		if d.SQLitePath == "" {
			return errors.New("config: SQLITE_PATH must be set")
		}
	default:
		return fmt.Errorf("config: DATABASE_TYPE must be postgres or sqlite, got %q", d.Type)
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
