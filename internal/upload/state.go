package upload

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB remembers the hash of the last document pushed per server and key, so
// unchanged collections are not sent again.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/push_state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "push_state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pushed_collections (
		server     TEXT NOT NULL,
		key        TEXT NOT NULL,
		hash       TEXT NOT NULL,
		pushed_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (server, key)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsPushed reports whether the document with hash was the last one pushed for
// server and key.
func (s *StateDB) IsPushed(server, key, hash string) (bool, error) {
	var stored string
	err := s.db.QueryRow(
		`SELECT hash FROM pushed_collections WHERE server = ? AND key = ?`,
		server, key,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == hash, nil
}

// MarkPushed records a successful push.
func (s *StateDB) MarkPushed(server, key, hash string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO pushed_collections (server, key, hash, pushed_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		server, key, hash,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashDocument computes the SHA-256 hash of a document.
func HashDocument(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}
