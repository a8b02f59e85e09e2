package models

import (
	"errors"
	"testing"
	"time"
)

func ptr(f float64) *float64 { return &f }

// TestValidYoutubeURL covers watch links, short links and rejected hosts.
func TestValidYoutubeURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", true},
		{"https://www.youtube.com/watch?v=abc123", true},
		{"https://youtube.com/watch?v=abc123", true},
		{"https://youtu.be/abc123", true},
		{"http://youtube.com/watch?v=abc123", false},
		{"https://vimeo.com/123", false},
		{"https://www.youtube.com/shorts/abc", false},
	}
	for _, tt := range tests {
		if got := ValidYoutubeURL(tt.url); got != tt.want {
			t.Errorf("ValidYoutubeURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

// TestExerciseValidate checks each rejected field wraps ErrValidation.
func TestExerciseValidate(t *testing.T) {
	valid := Exercise{ID: "1", Name: "Squat", MuscleGroup: "Legs", Sets: 4, Reps: 8}

	tests := []struct {
		name    string
		mutate  func(e *Exercise)
		wantErr bool
	}{
		{"valid", func(e *Exercise) {}, false},
		{"valid with charge and video", func(e *Exercise) {
			e.Charge = ptr(60)
			e.YoutubeURL = "https://youtu.be/x"
		}, false},
		{"zero charge", func(e *Exercise) { e.Charge = ptr(0) }, false},
		{"missing id", func(e *Exercise) { e.ID = "" }, true},
		{"blank name", func(e *Exercise) { e.Name = "   " }, true},
		{"blank muscle group", func(e *Exercise) { e.MuscleGroup = "" }, true},
		{"zero sets", func(e *Exercise) { e.Sets = 0 }, true},
		{"negative reps", func(e *Exercise) { e.Reps = -1 }, true},
		{"negative charge", func(e *Exercise) { e.Charge = ptr(-5) }, true},
		{"bad video", func(e *Exercise) { e.YoutubeURL = "https://example.com" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestNewExerciseID verifies ids are millisecond timestamps.
func TestNewExerciseID(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	if got := NewExerciseID(now); got != "1718000000123" {
		t.Errorf("NewExerciseID = %q, want %q", got, "1718000000123")
	}
}

// TestNormalize trims user-entered strings.
func TestNormalize(t *testing.T) {
	e := Exercise{Name: "  Bench ", MuscleGroup: " Chest", Notes: " slow ", YoutubeURL: " https://youtu.be/a "}.Normalize()
	if e.Name != "Bench" || e.MuscleGroup != "Chest" || e.Notes != "slow" || e.YoutubeURL != "https://youtu.be/a" {
		t.Errorf("Normalize = %+v", e)
	}
}

// TestNextExerciseID verifies ids stay unique within one millisecond.
func TestNextExerciseID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	if got := NextExerciseID(now, nil); got != "1700000000000" {
		t.Errorf("empty = %q", got)
	}
	existing := []Exercise{{ID: "1700000000000"}, {ID: "legacy"}, {ID: "5"}}
	if got := NextExerciseID(now, existing); got != "1700000000001" {
		t.Errorf("collision = %q, want 1700000000001", got)
	}
}
