// Package views derives display lists from the exercise and session collections.
// Every function is pure: inputs are never modified and nothing can fail.
package views

import (
	"strings"

	"github.com/claude/repbook/internal/models"
)

// FilterExercises keeps exercises whose name or muscle group contains query,
// case-insensitively. An empty query keeps everything. Order is preserved.
func FilterExercises(all []models.Exercise, query string) []models.Exercise {
	q := strings.ToLower(query)
	out := make([]models.Exercise, 0, len(all))
	for _, e := range all {
		if q == "" ||
			strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.MuscleGroup), q) {
			out = append(out, e)
		}
	}
	return out
}

// Group is one muscle-group section of a grouped exercise list.
type Group struct {
	MuscleGroup string            `json:"muscleGroup"`
	Exercises   []models.Exercise `json:"exercises"`
}

// GroupByMuscleGroup buckets exercises by exact muscle group string. Groups appear
// in first-seen order and keep the input order inside each group.
func GroupByMuscleGroup(list []models.Exercise) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, e := range list {
		i, ok := index[e.MuscleGroup]
		if !ok {
			i = len(groups)
			index[e.MuscleGroup] = i
			groups = append(groups, Group{MuscleGroup: e.MuscleGroup})
		}
		groups[i].Exercises = append(groups[i].Exercises, e)
	}
	return groups
}

// ResolvedExercise pairs a session entry with the exercise it references.
type ResolvedExercise struct {
	Exercise models.Exercise        `json:"exercise"`
	Entry    models.SessionExercise `json:"entry"`
}

// ResolveSessionExercises joins the session's entries to their exercises in
// session order. Entries whose exercise no longer exists are omitted.
func ResolveSessionExercises(session models.Session, all []models.Exercise) []ResolvedExercise {
	byID := make(map[string]models.Exercise, len(all))
	for _, e := range all {
		byID[e.ID] = e
	}
	out := make([]ResolvedExercise, 0, len(session.Exercises))
	for _, entry := range session.Exercises {
		e, ok := byID[entry.ExerciseID]
		if !ok {
			continue
		}
		sets := make([]models.SetRecord, len(entry.Sets))
		copy(sets, entry.Sets)
		out = append(out, ResolvedExercise{
			Exercise: e,
			Entry:    models.SessionExercise{ExerciseID: entry.ExerciseID, Sets: sets},
		})
	}
	return out
}

// AvailableExercises lists the exercises that are not yet part of the session.
func AvailableExercises(session models.Session, all []models.Exercise) []models.Exercise {
	out := make([]models.Exercise, 0, len(all))
	for _, e := range all {
		if !session.Has(e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// SessionDetail is everything the session screen shows: the session, its resolved
// entries and the exercises that can still be added.
type SessionDetail struct {
	Session   models.Session     `json:"session"`
	Exercises []ResolvedExercise `json:"exercises"`
	Available []models.Exercise  `json:"available"`
}

// DescribeSession builds the SessionDetail for session against all exercises.
func DescribeSession(session models.Session, all []models.Exercise) SessionDetail {
	return SessionDetail{
		Session:   session,
		Exercises: ResolveSessionExercises(session, all),
		Available: AvailableExercises(session, all),
	}
}
