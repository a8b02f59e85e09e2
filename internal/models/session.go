package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// SetRecord is one performed set. Both fields accept decimal input.
type SetRecord struct {
	Reps   float64 `json:"reps"`
	Weight float64 `json:"weight"`
}

// SessionExercise references an Exercise by id and carries the performed sets.
// The number of sets is fixed when the exercise is added to the session and is not
// resynced if the source exercise is edited later.
type SessionExercise struct {
	ExerciseID string      `json:"exerciseId"`
	Sets       []SetRecord `json:"sets"`
}

// Session is a named workout referencing zero or more exercises.
type Session struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []SessionExercise `json:"exercises"`
}

// NewSessionID returns a random UUID string.
func NewSessionID() string {
	return uuid.NewString()
}

// NewSession returns an empty session with a fresh id.
func NewSession(name string) Session {
	return Session{
		ID:        NewSessionID(),
		Name:      strings.TrimSpace(name),
		Exercises: []SessionExercise{},
	}
}

// MarshalJSON keeps "exercises" and "sets" as arrays even when empty.
func (s Session) MarshalJSON() ([]byte, error) {
	type alias Session
	out := alias(s)
	if out.Exercises == nil {
		out.Exercises = []SessionExercise{}
	}
	return json.Marshal(out)
}

// MarshalJSON keeps "sets" as an array even when empty.
func (se SessionExercise) MarshalJSON() ([]byte, error) {
	type alias SessionExercise
	out := alias(se)
	if out.Sets == nil {
		out.Sets = []SetRecord{}
	}
	return json.Marshal(out)
}

// Index returns the position of exerciseID in the session, or -1.
func (s Session) Index(exerciseID string) int {
	for i, e := range s.Exercises {
		if e.ExerciseID == exerciseID {
			return i
		}
	}
	return -1
}

// Has reports whether exerciseID is referenced by the session.
func (s Session) Has(exerciseID string) bool {
	return s.Index(exerciseID) >= 0
}

// Clone returns a deep copy.
func (s Session) Clone() Session {
	out := Session{ID: s.ID, Name: s.Name, Exercises: make([]SessionExercise, len(s.Exercises))}
	for i, e := range s.Exercises {
		sets := make([]SetRecord, len(e.Sets))
		copy(sets, e.Sets)
		out.Exercises[i] = SessionExercise{ExerciseID: e.ExerciseID, Sets: sets}
	}
	return out
}

// Validate checks the id, name, set values and the one-entry-per-exercise rule.
func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: session id is required", ErrValidation)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: session %s: name is required", ErrValidation, s.ID)
	}
	seen := make(map[string]bool, len(s.Exercises))
	for _, e := range s.Exercises {
		if e.ExerciseID == "" {
			return fmt.Errorf("%w: session %s: exerciseId is required", ErrValidation, s.ID)
		}
		if seen[e.ExerciseID] {
			return fmt.Errorf("%w: session %s: exercise %s listed twice", ErrValidation, s.ID, e.ExerciseID)
		}
		seen[e.ExerciseID] = true
		for i, set := range e.Sets {
			if !validMeasure(set.Reps) || !validMeasure(set.Weight) {
				return fmt.Errorf("%w: session %s: exercise %s: set %d has invalid values", ErrValidation, s.ID, e.ExerciseID, i)
			}
		}
	}
	return nil
}

func validMeasure(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EnrichedSessionExercise is a SessionExercise with the referenced exercise's
// display fields copied in. Export only.
type EnrichedSessionExercise struct {
	ExerciseID  string      `json:"exerciseId"`
	Sets        []SetRecord `json:"sets"`
	Name        string      `json:"name"`
	MuscleGroup string      `json:"muscleGroup"`
	Notes       string      `json:"notes"`
	YoutubeURL  string      `json:"youtubeUrl"`
}

// EnrichedSession is the denormalized export shape of a Session.
type EnrichedSession struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Exercises []EnrichedSessionExercise `json:"exercises"`
}
