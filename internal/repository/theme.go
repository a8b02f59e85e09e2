package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/storage"
)

// LoadTheme returns the stored theme, or the configured default when none is
// stored or the stored value is unrecognized.
func (r *Repository) LoadTheme(ctx context.Context) models.Theme {
	data, err := r.kv.Get(ctx, models.KeyTheme)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Warn("reading theme", "error", err)
		}
		return r.defaultTheme
	}
	t, err := models.ParseTheme(string(data))
	if err != nil {
		r.log.Warn("ignoring stored theme", "error", err)
		return r.defaultTheme
	}
	return t
}

// SaveTheme persists t as a plain string.
func (r *Repository) SaveTheme(ctx context.Context, t models.Theme) error {
	if _, err := models.ParseTheme(string(t)); err != nil {
		return err
	}
	if err := r.kv.Set(ctx, models.KeyTheme, []byte(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// ToggleTheme flips and persists the theme, returning the new value.
func (r *Repository) ToggleTheme(ctx context.Context) (models.Theme, error) {
	next := r.LoadTheme(ctx).Toggle()
	if err := r.SaveTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
