package views

import (
	"golang.org/x/text/language"

	"github.com/claude/repbook/internal/models"
)

// ListOptions drives ListExercises.
type ListOptions struct {
	Query  string
	Sort   SortCriterion
	Locale language.Tag
}

// ExerciseList is the filtered, sorted exercise list. Groups is set only when the
// list is sorted by muscle group.
type ExerciseList struct {
	Sort      SortCriterion     `json:"sort"`
	Exercises []models.Exercise `json:"exercises"`
	Groups    []Group           `json:"groups,omitempty"`
}

// ListExercises filters then sorts, the way the exercise list screen does.
func ListExercises(all []models.Exercise, opts ListOptions) ExerciseList {
	if opts.Sort == "" {
		opts.Sort = SortName
	}
	sorted := SortExercises(FilterExercises(all, opts.Query), opts.Sort, opts.Locale)
	out := ExerciseList{Sort: opts.Sort, Exercises: sorted}
	if opts.Sort == SortMuscleGroup {
		out.Groups = GroupByMuscleGroup(sorted)
	}
	return out
}
