package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/illarion/qsandbox/internal/crypto"
)

func openTestStore(t *testing.T) (*Storage, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.qsandbox")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Initialize(); err != nil {
		db.Close()
		t.Fatalf("Failed to initialize: %v", err)
	}
	return db, dbPath
}

func TestOpenAndInitialize(t *testing.T) {
	db, _ := openTestStore(t)
	defer db.Close()

	initialized, err := db.IsInitialized()
	if err != nil {
		t.Fatalf("Failed to check initialization: %v", err)
	}
	if !initialized {
		t.Error("Database should be initialized")
	}

	// Initialize is idempotent
	if err := db.Initialize(); err != nil {
		t.Fatalf("Second initialize failed: %v", err)
	}
}

func TestRecordOperations(t *testing.T) {
	db, _ := openTestStore(t)
	defer db.Close()

	rec := Record{
		ID:      "rec-1",
		Label:   "greeting",
		Level:   crypto.L3,
		Package: "c2FsdA==",
		Created: time.Now(),
	}
	if err := db.Put(rec); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}

	got, err := db.Get("rec-1")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if got.Label != "greeting" || got.Level != crypto.L3 || got.Package != rec.Package {
		t.Errorf("Record mismatch: got %+v, want %+v", got, rec)
	}

	if err := db.Delete("rec-1"); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}
	if _, err := db.Get("rec-1"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
	if err := db.Delete("rec-1"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestPutRequiresID(t *testing.T) {
	db, _ := openTestStore(t)
	defer db.Close()

	if err := db.Put(Record{Package: "x"}); err == nil {
		t.Error("Expected error for record without ID")
	}
}

func TestListNewestFirst(t *testing.T) {
	db, _ := openTestStore(t)
	defer db.Close()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		rec := Record{ID: id, Package: "cA==", Created: base.Add(time.Duration(i) * time.Minute)}
		if err := db.Put(rec); err != nil {
			t.Fatalf("Failed to put %s: %v", id, err)
		}
	}

	records, err := db.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"c", "b", "a"} {
		if records[i].ID != want {
			t.Errorf("records[%d] = %s, want %s", i, records[i].ID, want)
		}
	}
}

func TestStoreID(t *testing.T) {
	db, _ := openTestStore(t)
	defer db.Close()

	if _, err := db.GetStoreID(); err == nil {
		t.Error("Expected error before store ID is created")
	}

	id1, err := db.GetOrCreateStoreID()
	if err != nil {
		t.Fatalf("Failed to create store ID: %v", err)
	}
	id2, err := db.GetOrCreateStoreID()
	if err != nil {
		t.Fatalf("Failed to get store ID: %v", err)
	}
	if id1 == "" || id1 != id2 {
		t.Errorf("Store ID not stable: %q vs %q", id1, id2)
	}
}

func TestModifiedAdvances(t *testing.T) {
	db, _ := openTestStore(t)
	defer db.Close()

	before, err := db.GetModified()
	if err != nil {
		t.Fatalf("Failed to get modified: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := db.Put(Record{ID: "x", Package: "cA==", Created: time.Now()}); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	after, err := db.GetModified()
	if err != nil {
		t.Fatalf("Failed to get modified: %v", err)
	}
	if !after.After(before) {
		t.Errorf("Modified time did not advance: %v -> %v", before, after)
	}
}

func TestCompactKeepsRecords(t *testing.T) {
	db, _ := openTestStore(t)
	defer db.Close()

	for _, id := range []string{"keep", "drop"} {
		if err := db.Put(Record{ID: id, Package: "cA==", Created: time.Now()}); err != nil {
			t.Fatalf("Failed to put %s: %v", id, err)
		}
	}
	if err := db.Delete("drop"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	if err := db.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}

	records, err := db.List()
	if err != nil {
		t.Fatalf("Failed to list after compact: %v", err)
	}
	if len(records) != 1 || records[0].ID != "keep" {
		t.Errorf("Unexpected records after compact: %+v", records)
	}
}

func TestPersistence(t *testing.T) {
	db, dbPath := openTestStore(t)

	if err := db.Put(Record{ID: "test", Package: "ZGF0YQ==", Created: time.Now()}); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	db.Close()

	// Reopen and verify
	db2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db2.Close()

	rec, err := db2.Get("test")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if rec.Package != "ZGF0YQ==" {
		t.Error("Record not persisted correctly")
	}
}
