package repo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, IsPostgresDSN("postgres://u:p@localhost:5432/db"))
	assert.True(t, IsPostgresDSN("postgresql://localhost/db"))
	assert.True(t, IsPostgresDSN("host=localhost user=u dbname=db"))
	assert.False(t, IsPostgresDSN("catalog.db"))
	assert.False(t, IsPostgresDSN("file:catalog.db?cache=shared"))
}

func TestSqliteDSN_AddsBusyTimeout(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=busy_timeout(5000)", sqliteDSN("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=busy_timeout(5000)", sqliteDSN("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)", sqliteDSN("a.db?_pragma=foreign_keys(1)"))
}

func TestInitDB_SQLiteFile(t *testing.T) {
	db, err := InitDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, table := range []string{"users", "items", "ratings", "favorites"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
