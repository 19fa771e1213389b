package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func CreateTestDB(t testing.TB) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Could not open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TruncateTables(db *sql.DB) {
	for _, table := range []string{"reminders", "preferences"} {
		if _, err := db.ExecContext(context.Background(), "DELETE FROM "+table); err != nil {
			panic("Could not truncate DB tables.")
		}
	}
}
