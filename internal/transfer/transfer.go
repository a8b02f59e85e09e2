// Package transfer exports collections as JSON documents and imports them back,
// either replacing the stored collection or merging into it.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/repository"
)

var (
	ErrNothingToExport = errors.New("nothing to export")
	ErrInvalidFormat   = errors.New("invalid import format")
	ErrUnknownKey      = errors.New("unknown collection key")
	ErrInvalidPolicy   = errors.New("invalid import policy")
)

// Policy decides how an imported document is combined with stored data.
type Policy string

const (
	// PolicyReplace overwrites the stored collection with the document.
	PolicyReplace Policy = "replace"
	// PolicyMerge appends imported records whose id is not stored yet.
	PolicyMerge Policy = "merge"
)

// ParsePolicy accepts "replace" or "merge".
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyReplace, PolicyMerge:
		return Policy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// Result summarizes one import.
type Result struct {
	Key      string `json:"key"`
	Policy   Policy `json:"policy"`
	Received int    `json:"received"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// FileName returns the conventional export file name for key.
func FileName(key string) string {
	if key == models.KeySessions {
		return "sessions_export.json"
	}
	return key + ".json"
}

// Service runs exports and imports against the repository.
type Service struct {
	repo *repository.Repository
	log  *slog.Logger
}

// New creates a transfer Service.
func New(repo *repository.Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func checkKey(key string) error {
	if key != models.KeyExercises && key != models.KeySessions {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

func marshalDocument(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}
