package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"go.etcd.io/bbolt"
)

// NewBoltDB opens a bbolt database in a per-test temporary directory.
// Unlike the Postgres helpers this never skips — bbolt needs no external
// service, so actor tests always run. The database (and its directory) are
// removed automatically when the test finishes.
func NewBoltDB(t *testing.T) *bbolt.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "actors.db")
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("testutil.NewBoltDB: open: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
