// Package editor applies the in-session edits: adding and removing exercises and
// recording per-set reps and weight.
//
// The transforms are pure and return a new Session. Editor wraps them with a
// load and an immediate whole-collection save.
package editor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/repbook/internal/models"
)

var (
	ErrAlreadyPresent     = errors.New("exercise already in session")
	ErrNotInSession       = errors.New("exercise not in session")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrInvalidField       = errors.New("invalid set field")
	ErrSetIndexOutOfRange = errors.New("set index out of range")
)

// Set fields accepted by UpdateSetField.
const (
	FieldReps   = "reps"
	FieldWeight = "weight"
)

// decimalPattern accepts digits with an optional "." or "," fraction part.
var decimalPattern = regexp.MustCompile(`^(\d+)?([.,]\d*)?$`)

// ParseDecimal parses user-typed numbers such as "42", "42.5", "42,5" or ",5".
func ParseDecimal(raw string) (float64, error) {
	if !decimalPattern.MatchString(raw) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return v, nil
}

// AddExercise appends source to the session with source.Sets empty sets, each
// prefilled with the default reps and a zero weight.
func AddExercise(session models.Session, source models.Exercise) (models.Session, error) {
	if session.Has(source.ID) {
		return session, fmt.Errorf("exercise %s: %w", source.ID, ErrAlreadyPresent)
	}
	if source.Sets <= 0 {
		return session, fmt.Errorf("%w: exercise %s has %d sets", models.ErrValidation, source.ID, source.Sets)
	}
	out := session.Clone()
	sets := make([]models.SetRecord, source.Sets)
	for i := range sets {
		sets[i] = models.SetRecord{Reps: float64(source.Reps), Weight: 0}
	}
	out.Exercises = append(out.Exercises, models.SessionExercise{ExerciseID: source.ID, Sets: sets})
	return out, nil
}

// RemoveExercise drops the entry for exerciseID with all its recorded sets.
func RemoveExercise(session models.Session, exerciseID string) (models.Session, error) {
	i := session.Index(exerciseID)
	if i < 0 {
		return session, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotInSession)
	}
	out := session.Clone()
	out.Exercises = append(out.Exercises[:i], out.Exercises[i+1:]...)
	return out, nil
}

// UpdateSetField sets reps or weight of one set from raw user input. On any error
// the session is returned unchanged.
func UpdateSetField(session models.Session, exerciseID string, setIndex int, field, raw string) (models.Session, error) {
	if field != FieldReps && field != FieldWeight {
		return session, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	v, err := ParseDecimal(raw)
	if err != nil {
		return session, err
	}
	i := session.Index(exerciseID)
	if i < 0 {
		return session, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotInSession)
	}
	if setIndex < 0 || setIndex >= len(session.Exercises[i].Sets) {
		return session, fmt.Errorf("exercise %s set %d: %w", exerciseID, setIndex, ErrSetIndexOutOfRange)
	}

	out := session.Clone()
	set := &out.Exercises[i].Sets[setIndex]
	if field == FieldReps {
		set.Reps = v
	} else {
		set.Weight = v
	}
	return out, nil
}
