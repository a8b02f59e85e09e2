package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/repbook/internal/config"
)

// testKV exercises the KV contract shared by every backend.
func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "exercises"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store err = %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "exercises", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "exercises")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("got %s", got)
	}

	// Whole-value replace
	if err := kv.Set(ctx, "exercises", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = kv.Get(ctx, "exercises")
	if string(got) != `[]` {
		t.Errorf("after overwrite got %s, want []", got)
	}

	// Keys are independent
	if err := kv.Set(ctx, "theme", []byte("dark")); err != nil {
		t.Fatal(err)
	}
	if err := kv.Remove(ctx, "exercises"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := kv.Get(ctx, "exercises"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after remove err = %v, want ErrNotFound", err)
	}
	if got, _ := kv.Get(ctx, "theme"); string(got) != "dark" {
		t.Errorf("theme = %q, want dark", got)
	}

	// Removing an absent key is fine
	if err := kv.Remove(ctx, "missing"); err != nil {
		t.Errorf("remove missing: %v", err)
	}
}

// TestMemory runs the KV contract against the in-memory backend.
func TestMemory(t *testing.T) {
	testKV(t, NewMemory())
}

// TestMemoryCopiesValues verifies callers cannot mutate stored bytes.
func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	in := []byte("light")
	m.Set(ctx, "theme", in)
	in[0] = 'X'
	out, _ := m.Get(ctx, "theme")
	out[1] = 'X'
	again, _ := m.Get(ctx, "theme")
	if string(again) != "light" {
		t.Errorf("stored value = %q, want light", again)
	}
}

// TestSQLite runs the KV contract against a file-backed SQLite database.
func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "repbook.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	testKV(t, s)
}

// TestSQLiteInMemory runs the KV contract against ":memory:".
func TestSQLiteInMemory(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	testKV(t, s)
}

// TestSQLitePersistsAcrossReopen verifies values survive closing the database.
func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "repbook.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "sessions", []byte(`[{"id":"s1"}]`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.Get(ctx, "sessions")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[{"id":"s1"}]` {
		t.Errorf("got %s", got)
	}
}

// TestPostgres runs the KV contract against a real server when
// REPBOOK_TEST_POSTGRES_DSN is set.
func TestPostgres(t *testing.T) {
	dsn := os.Getenv("REPBOOK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("REPBOOK_TEST_POSTGRES_DSN not set")
	}
	kv, err := Open(context.Background(), config.StorageConfig{Driver: "postgres", DSN: dsn})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	for _, k := range []string{"exercises", "theme", "missing"} {
		kv.Remove(context.Background(), k)
	}
	testKV(t, kv)
}

// TestOpenUnknownDriver verifies driver dispatch rejects unknown names.
func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.StorageConfig{Driver: "mongo"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

// TestOpenMemory verifies the memory driver needs no path.
func TestOpenMemory(t *testing.T) {
	kv, err := Open(context.Background(), config.StorageConfig{Driver: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := kv.(*Memory); !ok {
		t.Errorf("Open(memory) = %T, want *Memory", kv)
	}
}
