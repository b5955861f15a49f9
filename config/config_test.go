package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIngest_SQLite(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/results.db")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadIngest()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Type)
	assert.Equal(t, "/tmp/results.db", cfg.SQLitePath)
	assert.True(t, cfg.Debug)
}

func TestLoadIngest_PostgresNeedsCredentials(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PASS", "")

	_, err := LoadIngest()
	assert.ErrorContains(t, err, "DATABASE_URL or DB_PASS")
}

func TestLoadIngest_UnknownType(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "mysql")
	_, err := LoadIngest()
	assert.ErrorContains(t, err, "postgres or sqlite")
}

func TestPostgresDSN(t *testing.T) {
	d := Database{DBUser: "u", DBPass: "p", DBHost: "h", DBPort: "5432", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.PostgresDSN())

	d.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", d.PostgresDSN())
}

func TestConfigValidate(t *testing.T) {
	c := &Config{Database: Database{Type: "sqlite", SQLitePath: "x.db"}}
	assert.ErrorContains(t, c.validate(), "JWT_SECRET")

	c.JWTSecret = "s"
	assert.NoError(t, c.validate())
	assert.Equal(t, []byte("s"), c.JWTKey())
}

func TestSplitTrimmed(t *testing.T) {
	assert.Equal(t, []string{"a.org", "www.a.org"}, splitTrimmed(" a.org, ,www.a.org "))
	assert.Empty(t, splitTrimmed(""))
}
