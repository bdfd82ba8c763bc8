package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	dbc, err := Open(":memory:")
	require.NoError(t, err)
	defer dbc.Close()

	require.NoError(t, Migrate(dbc))

	for _, table := range []string{"users", "sessions", "posts", "comments", "likes"} {
		var name string
		err := dbc.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}

	var version int
	require.NoError(t, dbc.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version))
	assert.Equal(t, migrations[len(migrations)-1].version, version)
}

func TestMigrateIdempotent(t *testing.T) {
	dbc, err := Open(":memory:")
	require.NoError(t, err)
	defer dbc.Close()

	require.NoError(t, Migrate(dbc))
	require.NoError(t, Migrate(dbc))

	var applied int
	require.NoError(t, dbc.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, len(migrations), applied)
}

func TestMigrateAddsLaterColumns(t *testing.T) {
	dbc, err := Open(":memory:")
	require.NoError(t, err)
	defer dbc.Close()

	require.NoError(t, Migrate(dbc))

	// Columns added by the trailing ALTER migrations.
	_, err = dbc.Exec(`SELECT school FROM users LIMIT 1`)
	assert.NoError(t, err)
	_, err = dbc.Exec(`SELECT view_count FROM posts LIMIT 1`)
	assert.NoError(t, err)
}
