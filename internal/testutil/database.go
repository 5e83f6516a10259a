package testutil

import (
	"database/sql"
	"testing"

	"github.com/ndewijer/Investment-Admin-Console/internal/database"
	"github.com/ndewijer/Investment-Admin-Console/internal/kvstore"
)

// SetupTestDB creates an in-memory SQLite database for testing with all
// migrations applied. The database is automatically cleaned up when the
// test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupTestStore creates a SQLite-backed record store over a fresh test database.
//
// Example usage:
//
//	store, db := testutil.SetupTestStore(t)
//	testutil.NewUser().Build(t, store)
//	testutil.AssertEntryCount(t, db, 1)
func SetupTestStore(t *testing.T) (*kvstore.SQLiteStore, *sql.DB) {
	t.Helper()

	db := SetupTestDB(t)
	return kvstore.NewSQLiteStore(db), db
}

// CountEntries returns the number of rows in the kv_entry table.
func CountEntries(t *testing.T, db *sql.DB) int {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv_entry").Scan(&count); err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}

	return count
}

// AssertEntryCount asserts that the kv_entry table has the expected number of rows.
func AssertEntryCount(t *testing.T, db *sql.DB, expected int) {
	t.Helper()

	actual := CountEntries(t, db)
	if actual != expected {
		t.Errorf("Expected %d entries, got %d", expected, actual)
	}
}
