// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"LunchAPI/internal/databases"
	"database/sql"
	"path/filepath"
	"testing"
)

// Open returns a migrated database in a temporary directory that is closed
// when the test ends.
func Open(t testing.TB, name string) *sql.DB {
	t.Helper()
	db, err := databases.OpenAndMigrate(filepath.Join(t.TempDir(), name+".db"), name)
	if err != nil {
		t.Fatalf("open %s database: %v", name, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
