package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestConnectCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "visitors.db")

	db, err := Connect(context.Background(), path)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestConnectMemory(t *testing.T) {
	db, err := Connect(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	db.Close()
}
