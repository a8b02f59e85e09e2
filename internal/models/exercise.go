package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Storage keys for the persisted collections.
const (
	KeyExercises = "exercises"
	KeySessions  = "sessions"
	KeyTheme     = "theme"
)

// Exercise is a reusable movement definition with its default prescription.
// Sets and Reps are defaults used when the exercise is added to a session, not a
// log of performance.
type Exercise struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MuscleGroup string   `json:"muscleGroup"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	Charge      *float64 `json:"charge,omitempty"` // default working weight, kg
	Notes       string   `json:"notes,omitempty"`
	YoutubeURL  string   `json:"youtubeUrl,omitempty"`
}

var youtubeURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://(www\.)?youtube\.com/watch\?v=`),
	regexp.MustCompile(`^https://youtu\.be/`),
}

// ValidYoutubeURL reports whether u is empty or a YouTube watch or short link.
func ValidYoutubeURL(u string) bool {
	if u == "" {
		return true
	}
	for _, re := range youtubeURLPatterns {
		if re.MatchString(u) {
			return true
		}
	}
	return false
}

// NewExerciseID returns a timestamp-derived numeric id (Unix milliseconds).
// The "recent" sort relies on ids being numeric.
func NewExerciseID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// NextExerciseID returns NewExerciseID(now), bumped past the largest numeric id in
// existing so two exercises created in the same millisecond do not collide.
func NextExerciseID(now time.Time, existing []Exercise) string {
	next := now.UnixMilli()
	for _, e := range existing {
		if v, err := strconv.ParseInt(e.ID, 10, 64); err == nil && v >= next {
			next = v + 1
		}
	}
	return strconv.FormatInt(next, 10)
}

// ChargeOrZero returns the default weight, treating a missing charge as 0.
func (e Exercise) ChargeOrZero() float64 {
	if e.Charge == nil {
		return 0
	}
	return *e.Charge
}

// Validate checks required fields, positive prescription, charge and video link.
func (e Exercise) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: exercise id is required", ErrValidation)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: exercise %s: name is required", ErrValidation, e.ID)
	}
	if strings.TrimSpace(e.MuscleGroup) == "" {
		return fmt.Errorf("%w: exercise %s: muscleGroup is required", ErrValidation, e.ID)
	}
	if e.Sets <= 0 {
		return fmt.Errorf("%w: exercise %s: sets must be positive, got %d", ErrValidation, e.ID, e.Sets)
	}
	if e.Reps <= 0 {
		return fmt.Errorf("%w: exercise %s: reps must be positive, got %d", ErrValidation, e.ID, e.Reps)
	}
	if e.Charge != nil && (*e.Charge < 0 || math.IsNaN(*e.Charge) || math.IsInf(*e.Charge, 0)) {
		return fmt.Errorf("%w: exercise %s: charge must be a non-negative number", ErrValidation, e.ID)
	}
	if !ValidYoutubeURL(e.YoutubeURL) {
		return fmt.Errorf("%w: exercise %s: invalid YouTube URL %q", ErrValidation, e.ID, e.YoutubeURL)
	}
	return nil
}

// Normalize trims display strings the way the add/edit flows do before saving.
func (e Exercise) Normalize() Exercise {
	e.Name = strings.TrimSpace(e.Name)
	e.MuscleGroup = strings.TrimSpace(e.MuscleGroup)
	e.Notes = strings.TrimSpace(e.Notes)
	e.YoutubeURL = strings.TrimSpace(e.YoutubeURL)
	return e
}
