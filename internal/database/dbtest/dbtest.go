// Package dbtest opens migrated SQLite databases for repository and handler tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-portal/internal/database"
	"github.com/jmoiron/sqlx"
)

// New returns a fresh, migrated database that is closed when the test ends.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "portal.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
