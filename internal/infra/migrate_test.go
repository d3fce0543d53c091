package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/sky?sslmode=disable", migrateURL("postgres://u:p@localhost:5432/sky?sslmode=disable"))
	assert.Equal(t, "pgx5://localhost/sky", migrateURL("postgresql://localhost/sky"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_ai_usage.up.sql")
	assert.Contains(t, names, "000001_ai_usage.down.sql")
}
