package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	const query = "INSERT INTO balances (address, balance) VALUES (?, ?)"
	assert.Equal(t, query, Rebind(DriverSQLite, query))
	assert.Equal(t, "INSERT INTO balances (address, balance) VALUES ($1, $2)", Rebind(DriverPostgres, query))
	assert.Equal(t, "SELECT 1", Rebind(DriverPostgres, "SELECT 1"))
}

func TestOpen(t *testing.T) {
	_, err := Open("", "")
	assert.Equal(t, ErrNoDriver, err)

	_, err = Open("mysql", "")
	assert.EqualError(t, err, "unsupported database driver: mysql")
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, Migrate(db, DriverSQLite, ""))
	// applied migrations are skipped
	assert.NoError(t, Migrate(db, DriverSQLite, ""))

	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM " + migrationTable)
	assert.NoError(t, row.Scan(&count))
	assert.Equal(t, 2, count)

	for _, table := range []string{"balances", "ledger_entries", "round_results", "rooms"} {
		var name string
		row := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		assert.NoError(t, row.Scan(&name), table)
	}
}
