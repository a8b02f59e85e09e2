package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/repbook/internal/models"
)

// GetSession returns the session with the given id.
func (r *Repository) GetSession(ctx context.Context, id string) (models.Session, error) {
	for _, s := range r.LoadSessions(ctx) {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
}

// AddSession validates s and appends it to the collection.
func (r *Repository) AddSession(ctx context.Context, s models.Session) (models.Session, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Exercises == nil {
		s.Exercises = []models.SessionExercise{}
	}
	if err := s.Validate(); err != nil {
		return models.Session{}, err
	}
	entries := r.sessionEntries(ctx)
	if indexOf(entries, s.ID) >= 0 {
		return models.Session{}, fmt.Errorf("session %s: %w", s.ID, ErrDuplicateID)
	}
	entries = append(entries, entry[models.Session]{id: s.ID, value: s, valid: true})
	if err := saveEntries(ctx, r, models.KeySessions, entries); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// UpdateSession replaces the stored session with the same id.
func (r *Repository) UpdateSession(ctx context.Context, s models.Session) (models.Session, error) {
	if err := s.Validate(); err != nil {
		return models.Session{}, err
	}
	entries := r.sessionEntries(ctx)
	i := indexOf(entries, s.ID)
	if i < 0 {
		return models.Session{}, fmt.Errorf("session %s: %w", s.ID, ErrNotFound)
	}
	entries[i] = entry[models.Session]{id: s.ID, value: s, valid: true}
	if err := saveEntries(ctx, r, models.KeySessions, entries); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// RenameSession changes only the session name.
func (r *Repository) RenameSession(ctx context.Context, id, name string) (models.Session, error) {
	s, err := r.GetSession(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	s.Name = strings.TrimSpace(name)
	return r.UpdateSession(ctx, s)
}

// DeleteSession removes the session.
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	entries := r.sessionEntries(ctx)
	i := indexOf(entries, id)
	if i < 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return saveEntries(ctx, r, models.KeySessions, append(entries[:i], entries[i+1:]...))
}
