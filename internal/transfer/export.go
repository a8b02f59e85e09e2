package transfer

import (
	"context"
	"fmt"

	"github.com/claude/repbook/internal/models"
)

// ExportCollection returns the stored collection for key as an indented JSON
// array. An absent or empty collection yields ErrNothingToExport.
func (s *Service) ExportCollection(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	var doc any
	n := 0
	switch key {
	case models.KeyExercises:
		exercises := s.repo.LoadExercises(ctx)
		doc, n = exercises, len(exercises)
	case models.KeySessions:
		sessions := s.repo.LoadSessions(ctx)
		doc, n = sessions, len(sessions)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", key, ErrNothingToExport)
	}
	return marshalDocument(doc)
}

// EnrichSessions copies each referenced exercise's name, muscle group, notes and
// video link into the session entries. Unmatched references get empty strings.
func EnrichSessions(sessions []models.Session, exercises []models.Exercise) []models.EnrichedSession {
	byID := make(map[string]models.Exercise, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = e
	}

	out := make([]models.EnrichedSession, 0, len(sessions))
	for _, s := range sessions {
		es := models.EnrichedSession{
			ID:        s.ID,
			Name:      s.Name,
			Exercises: make([]models.EnrichedSessionExercise, 0, len(s.Exercises)),
		}
		for _, entry := range s.Exercises {
			e := byID[entry.ExerciseID]
			sets := make([]models.SetRecord, len(entry.Sets))
			copy(sets, entry.Sets)
			es.Exercises = append(es.Exercises, models.EnrichedSessionExercise{
				ExerciseID:  entry.ExerciseID,
				Sets:        sets,
				Name:        e.Name,
				MuscleGroup: e.MuscleGroup,
				Notes:       e.Notes,
				YoutubeURL:  e.YoutubeURL,
			})
		}
		out = append(out, es)
	}
	return out
}

// ExportEnrichedSessions returns the sessions with exercise details inlined. Both
// collections must be non-empty.
func (s *Service) ExportEnrichedSessions(ctx context.Context) ([]byte, error) {
	sessions := s.repo.LoadSessions(ctx)
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%s: %w", models.KeySessions, ErrNothingToExport)
	}
	exercises := s.repo.LoadExercises(ctx)
	if len(exercises) == 0 {
		return nil, fmt.Errorf("%s: %w", models.KeyExercises, ErrNothingToExport)
	}
	return marshalDocument(EnrichSessions(sessions, exercises))
}
