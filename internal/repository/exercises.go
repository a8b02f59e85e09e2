package repository

import (
	"context"
	"fmt"

	"github.com/claude/repbook/internal/models"
)

// GetExercise returns the exercise with the given id.
func (r *Repository) GetExercise(ctx context.Context, id string) (models.Exercise, error) {
	for _, e := range r.LoadExercises(ctx) {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Exercise{}, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
}

// AddExercise validates e and appends it to the collection. The id must not be
// taken by any stored record, readable or not.
func (r *Repository) AddExercise(ctx context.Context, e models.Exercise) (models.Exercise, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return models.Exercise{}, err
	}
	entries := r.exerciseEntries(ctx)
	if indexOf(entries, e.ID) >= 0 {
		return models.Exercise{}, fmt.Errorf("exercise %s: %w", e.ID, ErrDuplicateID)
	}
	entries = append(entries, entry[models.Exercise]{id: e.ID, value: e, valid: true})
	if err := saveEntries(ctx, r, models.KeyExercises, entries); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// UpdateExercise replaces the stored exercise with the same id. A stored record
// that could not be read is replaced too.
func (r *Repository) UpdateExercise(ctx context.Context, e models.Exercise) (models.Exercise, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return models.Exercise{}, err
	}
	entries := r.exerciseEntries(ctx)
	i := indexOf(entries, e.ID)
	if i < 0 {
		return models.Exercise{}, fmt.Errorf("exercise %s: %w", e.ID, ErrNotFound)
	}
	entries[i] = entry[models.Exercise]{id: e.ID, value: e, valid: true}
	if err := saveEntries(ctx, r, models.KeyExercises, entries); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// DeleteExercise removes the exercise. Sessions that reference it are left alone;
// the dangling entries are skipped when sessions are resolved for display.
func (r *Repository) DeleteExercise(ctx context.Context, id string) error {
	entries := r.exerciseEntries(ctx)
	i := indexOf(entries, id)
	if i < 0 {
		return fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	return saveEntries(ctx, r, models.KeyExercises, append(entries[:i], entries[i+1:]...))
}
