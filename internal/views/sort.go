package views

import (
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/claude/repbook/internal/models"
)

// SortCriterion selects the ordering of the exercise list.
type SortCriterion string

const (
	SortName        SortCriterion = "name"
	SortMuscleGroup SortCriterion = "muscleGroup"
	SortCharge      SortCriterion = "charge"
	SortRecent      SortCriterion = "recent"
)

var sortRing = []SortCriterion{SortName, SortMuscleGroup, SortCharge, SortRecent}

// ParseSortCriterion accepts one of the four criterion names.
func ParseSortCriterion(s string) (SortCriterion, error) {
	c := SortCriterion(s)
	if slices.Contains(sortRing, c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown sort criterion %q", s)
}

// CycleSortCriterion returns the next criterion in the ring
// name, muscleGroup, charge, recent. Unknown values restart at name.
func CycleSortCriterion(c SortCriterion) SortCriterion {
	i := slices.Index(sortRing, c)
	if i < 0 {
		return SortName
	}
	return sortRing[(i+1)%len(sortRing)]
}

// SortExercises returns a stably sorted copy of list. Text criteria use the
// collation rules of tag; charge and recent sort descending. Unknown criteria
// return the copy in input order.
func SortExercises(list []models.Exercise, c SortCriterion, tag language.Tag) []models.Exercise {
	out := slices.Clone(list)
	if out == nil {
		out = []models.Exercise{}
	}

	switch c {
	case SortName, SortMuscleGroup:
		col := collate.New(tag)
		key := func(e models.Exercise) string { return e.Name }
		if c == SortMuscleGroup {
			key = func(e models.Exercise) string { return e.MuscleGroup }
		}
		slices.SortStableFunc(out, func(a, b models.Exercise) int {
			return col.CompareString(key(a), key(b))
		})
	case SortCharge:
		slices.SortStableFunc(out, func(a, b models.Exercise) int {
			return compareDesc(a.ChargeOrZero(), b.ChargeOrZero())
		})
	case SortRecent:
		slices.SortStableFunc(out, func(a, b models.Exercise) int {
			return compareDesc(numericID(a.ID), numericID(b.ID))
		})
	}
	return out
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// numericID reads timestamp ids. Ids that are not numbers sort as 0.
func numericID(id string) float64 {
	v, err := strconv.ParseFloat(id, 64)
	if err != nil {
		return 0
	}
	return v
}
