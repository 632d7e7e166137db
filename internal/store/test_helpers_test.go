package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/healthrec/internal/record"
	"github.com/roach88/healthrec/internal/testutil"
)

// createTestStore creates a new file-backed store in a temp dir with a
// deterministic clock.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithClock(testutil.NewDeterministicClock().Now))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustInsert inserts an entry and fails the test on error.
func mustInsert(t *testing.T, s *Store, name, code, details string) int64 {
	t.Helper()
	id, err := s.Insert(context.Background(), record.Entry{Name: name, Code: code, Details: details})
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", name, err)
	}
	return id
}

// countRecords returns the number of rows in the records table.
func countRecords(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}
