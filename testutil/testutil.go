// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/KeshavWanjale/usercrud/internal/database"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory SQLite database and runs migrate on it.
// The database is closed when the test ends.
func NewTestDB(t testing.TB, migrate func(*gorm.DB) error) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:", database.Options{
		Logger: database.NewGormLogger(nil, "silent"),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if migrate != nil {
		if err := migrate(db); err != nil {
			t.Fatalf("failed to migrate test db: %v", err)
		}
	}
	return db
}
