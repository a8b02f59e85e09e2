package editor

import (
	"context"
	"log/slog"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/repository"
)

// Editor applies edits to stored sessions. Every successful edit is written back
// immediately.
type Editor struct {
	repo *repository.Repository
	log  *slog.Logger
}

// New creates an Editor.
func New(repo *repository.Repository, log *slog.Logger) *Editor {
	return &Editor{repo: repo, log: log}
}

func (ed *Editor) apply(ctx context.Context, sessionID string, fn func(models.Session) (models.Session, error)) (models.Session, error) {
	s, err := ed.repo.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	updated, err := fn(s)
	if err != nil {
		return s, err
	}
	if _, err := ed.repo.UpdateSession(ctx, updated); err != nil {
		ed.log.Error("saving session", "session", sessionID, "error", err)
		return s, err
	}
	return updated, nil
}

// AddExerciseToSession adds a stored exercise to a stored session.
func (ed *Editor) AddExerciseToSession(ctx context.Context, sessionID, exerciseID string) (models.Session, error) {
	ex, err := ed.repo.GetExercise(ctx, exerciseID)
	if err != nil {
		return models.Session{}, err
	}
	return ed.apply(ctx, sessionID, func(s models.Session) (models.Session, error) {
		return AddExercise(s, ex)
	})
}

// RemoveExerciseFromSession drops an exercise and its recorded sets from a session.
// Callers are expected to have confirmed the removal with the user.
func (ed *Editor) RemoveExerciseFromSession(ctx context.Context, sessionID, exerciseID string) (models.Session, error) {
	return ed.apply(ctx, sessionID, func(s models.Session) (models.Session, error) {
		return RemoveExercise(s, exerciseID)
	})
}

// UpdateSet records one reps or weight value.
func (ed *Editor) UpdateSet(ctx context.Context, sessionID, exerciseID string, setIndex int, field, raw string) (models.Session, error) {
	return ed.apply(ctx, sessionID, func(s models.Session) (models.Session, error) {
		return UpdateSetField(s, exerciseID, setIndex, field, raw)
	})
}
