package transfer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/repbook/internal/models"
)

// record is the part of a stored record the import needs.
type record interface {
	models.Exercise | models.Session
}

// decodeDocument parses doc as a JSON array of T and validates every element.
// A single bad element, or an id used twice, rejects the whole document.
func decodeDocument[T record](doc []byte, validate func(T) error, id func(T) string) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("%w: document is not a JSON array: %v", ErrInvalidFormat, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not a JSON array", ErrInvalidFormat)
	}
	out := make([]T, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidFormat, i, err)
		}
		if err := validate(v); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidFormat, i, err)
		}
		if first, dup := seen[id(v)]; dup {
			return nil, fmt.Errorf("%w: element %d: id %q already used by element %d", ErrInvalidFormat, i, id(v), first)
		}
		seen[id(v)] = i
		out = append(out, v)
	}
	return out, nil
}

// unclaimed returns the imported records whose id is not in stored.
func unclaimed[T record](stored []string, imported []T, id func(T) string) []T {
	taken := make(map[string]bool, len(stored))
	for _, s := range stored {
		taken[s] = true
	}
	var out []T
	for _, v := range imported {
		if !taken[id(v)] {
			out = append(out, v)
		}
	}
	return out
}

func exerciseID(e models.Exercise) string { return e.ID }

func sessionID(s models.Session) string { return s.ID }

// ImportCollection decodes doc as a collection for key and stores it under
// policy. Nothing is written unless the whole document is valid. Merge keeps
// every stored record, including ones that cannot be read, and appends the
// imported records whose id is free.
func (s *Service) ImportCollection(ctx context.Context, key string, doc []byte, policy Policy) (*Result, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if _, err := ParsePolicy(string(policy)); err != nil {
		return nil, err
	}

	result := &Result{Key: key, Policy: policy}
	switch key {
	case models.KeyExercises:
		imported, err := decodeDocument(doc, models.Exercise.Validate, exerciseID)
		if err != nil {
			return nil, err
		}
		add := imported
		if policy == PolicyMerge {
			add = unclaimed(s.repo.StoredIDs(ctx, key), imported, exerciseID)
			err = s.repo.AppendExercises(ctx, add)
		} else {
			err = s.repo.SaveExercises(ctx, imported)
		}
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", key, err)
		}
		result.Received, result.Imported = len(imported), len(add)

	case models.KeySessions:
		imported, err := decodeDocument(doc, models.Session.Validate, sessionID)
		if err != nil {
			return nil, err
		}
		add := imported
		if policy == PolicyMerge {
			add = unclaimed(s.repo.StoredIDs(ctx, key), imported, sessionID)
			err = s.repo.AppendSessions(ctx, add)
		} else {
			err = s.repo.SaveSessions(ctx, imported)
		}
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", key, err)
		}
		result.Received, result.Imported = len(imported), len(add)
	}
	result.Skipped = result.Received - result.Imported

	s.log.Info("import complete",
		"key", result.Key,
		"policy", result.Policy,
		"received", result.Received,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}
