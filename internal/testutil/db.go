package testutil

import (
	"testing"

	"github.com/paratus/tasks/internal/infrastructure/database"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It automatically closes the database when the test completes.
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewSQLiteMemory()
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	return db
}
