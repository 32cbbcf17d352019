package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "gamedex",
		Password: "secret",
		Name:     "gamedex",
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "host=localhost")
	require.Contains(t, dsn, "port=5432")
	require.Contains(t, dsn, "user=gamedex")
	require.Contains(t, dsn, "dbname=gamedex")
	require.Contains(t, dsn, "password=secret")
	require.Contains(t, dsn, "sslmode=disable")
}

func TestBuildPostgresDSNRequiresUserAndName(t *testing.T) {
	_, err := buildPostgresDSN(Config{User: "gamedex"})
	require.Error(t, err)
}

func TestBuildPostgresDSNHonoursOverride(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{DSN: "postgres://custom"})
	require.NoError(t, err)
	require.Equal(t, "postgres://custom", dsn)
}

func TestBuildMySQLDSN(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{
		User:     "gamedex",
		Password: "secret",
		Name:     "gamedex",
		Host:     "db.internal",
		Port:     3307,
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "gamedex:secret@tcp(db.internal:3307)/gamedex?")
	require.Contains(t, dsn, "charset=utf8mb4")
	require.Contains(t, dsn, "parseTime=True")
}

func TestBuildMySQLDSNRequiresUserAndName(t *testing.T) {
	_, err := buildMySQLDSN(Config{Name: "gamedex"})
	require.Error(t, err)
}
