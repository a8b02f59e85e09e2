// Package repository loads and saves the exercise and session collections.
//
// Every mutation is a sequential load, compute and whole-collection save. There is
// no locking or versioning: two writers racing on the same key get last-write-wins.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/storage"
)

var (
	// ErrNotFound is returned when an exercise or session id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when adding a record whose id already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// Repository reads and writes typed collections on top of a KV store.
type Repository struct {
	kv           storage.KV
	defaultTheme models.Theme
	log          *slog.Logger
}

// New creates a Repository. defaultTheme is returned by LoadTheme when nothing
// valid is stored.
func New(kv storage.KV, defaultTheme models.Theme, log *slog.Logger) *Repository {
	if defaultTheme == "" {
		defaultTheme = models.ThemeLight
	}
	return &Repository{kv: kv, defaultTheme: defaultTheme, log: log}
}

// LoadRaw returns the stored bytes for key.
func (r *Repository) LoadRaw(ctx context.Context, key string) ([]byte, error) {
	return r.kv.Get(ctx, key)
}

// SaveRaw replaces the stored bytes for key.
func (r *Repository) SaveRaw(ctx context.Context, key string, data []byte) error {
	return r.kv.Set(ctx, key, data)
}

// loadArray reads key and decodes it as a JSON array of raw elements. Missing keys,
// read failures and malformed documents all yield nil after logging.
func (r *Repository) loadArray(ctx context.Context, key string) []json.RawMessage {
	data, err := r.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		r.log.Warn("reading collection", "key", key, "error", err)
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		r.log.Warn("stored collection is not a JSON array", "key", key, "error", err)
		return nil
	}
	return items
}

// entry is one stored element of a collection. Elements that fail to decode or
// validate keep their raw bytes and are written back unchanged by mutations, so a
// record this version cannot read is never lost by an unrelated write.
type entry[T any] struct {
	id    string
	raw   json.RawMessage
	value T
	valid bool
}

// loadEntries decodes every element of key. check validates (and may normalize)
// a decoded value; elements it rejects are kept raw and logged.
func loadEntries[T any](ctx context.Context, r *Repository, key string, check func(*T) error) []entry[T] {
	items := r.loadArray(ctx, key)
	out := make([]entry[T], 0, len(items))
	for i, raw := range items {
		var head struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(raw, &head)
		en := entry[T]{id: head.ID, raw: raw}
		if err := json.Unmarshal(raw, &en.value); err != nil {
			r.log.Warn("skipping undecodable record", "key", key, "index", i, "id", head.ID, "error", err)
		} else if err := check(&en.value); err != nil {
			r.log.Warn("skipping invalid record", "key", key, "index", i, "id", head.ID, "error", err)
		} else {
			en.valid = true
		}
		out = append(out, en)
	}
	return out
}

// saveEntries writes the collection back, re-encoding valid values and passing
// the others through as stored.
func saveEntries[T any](ctx context.Context, r *Repository, key string, entries []entry[T]) error {
	items := make([]json.RawMessage, 0, len(entries))
	for _, en := range entries {
		if !en.valid {
			items = append(items, en.raw)
			continue
		}
		b, err := json.Marshal(en.value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		items = append(items, b)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func values[T any](entries []entry[T]) []T {
	out := make([]T, 0, len(entries))
	for _, en := range entries {
		if en.valid {
			out = append(out, en.value)
		}
	}
	return out
}

func indexOf[T any](entries []entry[T], id string) int {
	if id == "" {
		return -1
	}
	for i, en := range entries {
		if en.id == id {
			return i
		}
	}
	return -1
}

func checkExercise(e *models.Exercise) error { return e.Validate() }

func checkSession(s *models.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Exercises == nil {
		s.Exercises = []models.SessionExercise{}
	}
	return nil
}

func (r *Repository) exerciseEntries(ctx context.Context) []entry[models.Exercise] {
	return loadEntries(ctx, r, models.KeyExercises, checkExercise)
}

func (r *Repository) sessionEntries(ctx context.Context) []entry[models.Session] {
	return loadEntries(ctx, r, models.KeySessions, checkSession)
}

// LoadExercises returns the stored exercises. It never fails: a missing or corrupt
// collection loads as empty, and records that cannot be read are left out (they
// stay in the store).
func (r *Repository) LoadExercises(ctx context.Context) []models.Exercise {
	return values(r.exerciseEntries(ctx))
}

// LoadSessions returns the stored sessions with the same fallback rules as
// LoadExercises.
func (r *Repository) LoadSessions(ctx context.Context) []models.Session {
	return values(r.sessionEntries(ctx))
}

// StoredIDs returns the id of every stored element of key, including records
// LoadExercises and LoadSessions leave out.
func (r *Repository) StoredIDs(ctx context.Context, key string) []string {
	var ids []string
	for _, raw := range r.loadArray(ctx, key) {
		var head struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(raw, &head) == nil && head.ID != "" {
			ids = append(ids, head.ID)
		}
	}
	return ids
}

// AppendExercises adds exercises after the stored ones, keeping unreadable records.
func (r *Repository) AppendExercises(ctx context.Context, exercises []models.Exercise) error {
	entries := r.exerciseEntries(ctx)
	for _, e := range exercises {
		entries = append(entries, entry[models.Exercise]{id: e.ID, value: e, valid: true})
	}
	return saveEntries(ctx, r, models.KeyExercises, entries)
}

// AppendSessions adds sessions after the stored ones, keeping unreadable records.
func (r *Repository) AppendSessions(ctx context.Context, sessions []models.Session) error {
	entries := r.sessionEntries(ctx)
	for _, s := range sessions {
		entries = append(entries, entry[models.Session]{id: s.ID, value: s, valid: true})
	}
	return saveEntries(ctx, r, models.KeySessions, entries)
}

// SaveExercises replaces the whole exercise collection.
func (r *Repository) SaveExercises(ctx context.Context, exercises []models.Exercise) error {
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	data, err := json.Marshal(exercises)
	if err != nil {
		return fmt.Errorf("encoding exercises: %w", err)
	}
	if err := r.kv.Set(ctx, models.KeyExercises, data); err != nil {
		return fmt.Errorf("saving exercises: %w", err)
	}
	return nil
}

// SaveSessions replaces the whole session collection.
func (r *Repository) SaveSessions(ctx context.Context, sessions []models.Session) error {
	if sessions == nil {
		sessions = []models.Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encoding sessions: %w", err)
	}
	if err := r.kv.Set(ctx, models.KeySessions, data); err != nil {
		return fmt.Errorf("saving sessions: %w", err)
	}
	return nil
}
