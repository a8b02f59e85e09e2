package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestNewSessionSerializesEmptyExercises verifies a new session stores "exercises": [].
func TestNewSessionSerializesEmptyExercises(t *testing.T) {
	s := NewSession("  Day 1 ")
	if s.Name != "Day 1" {
		t.Errorf("name = %q, want %q", s.Name, "Day 1")
	}
	if s.ID == "" {
		t.Fatal("expected generated id")
	}

	b, err := json.Marshal(Session{ID: "s1", Name: "Day1"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"s1","name":"Day1","exercises":[]}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}

	b, err = json.Marshal(SessionExercise{ExerciseID: "1"})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"exerciseId":"1","sets":[]}` {
		t.Errorf("json = %s", b)
	}
}

// TestSessionClone verifies the copy shares no backing arrays with the source.
func TestSessionClone(t *testing.T) {
	orig := Session{ID: "s1", Name: "A", Exercises: []SessionExercise{
		{ExerciseID: "1", Sets: []SetRecord{{Reps: 8, Weight: 0}}},
	}}
	c := orig.Clone()
	if diff := cmp.Diff(orig, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}
	c.Exercises[0].Sets[0].Weight = 100
	if orig.Exercises[0].Sets[0].Weight != 0 {
		t.Error("mutating clone changed original")
	}
}

// TestSessionIndex covers present and absent exercise ids.
func TestSessionIndex(t *testing.T) {
	s := Session{Exercises: []SessionExercise{{ExerciseID: "a"}, {ExerciseID: "b"}}}
	if s.Index("b") != 1 {
		t.Errorf("Index(b) = %d, want 1", s.Index("b"))
	}
	if s.Has("c") {
		t.Error("Has(c) = true, want false")
	}
}

// TestSessionValidate rejects duplicates, blank names and negative set values.
func TestSessionValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Session
		wantErr bool
	}{
		{"empty session", Session{ID: "s", Name: "Day"}, false},
		{"with sets", Session{ID: "s", Name: "Day", Exercises: []SessionExercise{
			{ExerciseID: "1", Sets: []SetRecord{{Reps: 8, Weight: 42.5}}},
		}}, false},
		{"missing id", Session{Name: "Day"}, true},
		{"blank name", Session{ID: "s", Name: " "}, true},
		{"duplicate exercise", Session{ID: "s", Name: "Day", Exercises: []SessionExercise{
			{ExerciseID: "1"}, {ExerciseID: "1"},
		}}, true},
		{"negative weight", Session{ID: "s", Name: "Day", Exercises: []SessionExercise{
			{ExerciseID: "1", Sets: []SetRecord{{Reps: 8, Weight: -1}}},
		}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

// TestThemeToggle verifies parse and toggle round trip.
func TestThemeToggle(t *testing.T) {
	th, err := ParseTheme("dark")
	if err != nil {
		t.Fatal(err)
	}
	if th.Toggle() != ThemeLight || ThemeLight.Toggle() != ThemeDark {
		t.Error("toggle did not alternate")
	}
	if _, err := ParseTheme("blue"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseTheme(blue) err = %v, want ErrValidation", err)
	}
}
