// Package upload pushes local collections to a remote repbook server through its
// import endpoint.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/repbook/internal/transfer"
)

// Stats tracks push progress.
type Stats struct {
	Pushed  []*transfer.Result `json:"pushed"`
	Skipped []string           `json:"skipped,omitempty"` // unchanged since the last push
	Empty   []string           `json:"empty,omitempty"`   // nothing to export
}

// Uploader exports collections locally and pushes them to one server.
type Uploader struct {
	client   *Client
	state    *StateDB
	exporter *transfer.Service
	server   string
	force    bool
	log      *slog.Logger
}

// New creates a new Uploader. state may be nil to push unconditionally.
func New(client *Client, state *StateDB, exporter *transfer.Service, force bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client:   client,
		state:    state,
		exporter: exporter,
		server:   client.serverURL,
		force:    force,
		log:      log,
	}
}

// Run pushes each key with the given policy. Sessions are pushed in their stored
// shape so the server can import them directly.
func (u *Uploader) Run(ctx context.Context, keys []string, policy transfer.Policy) (*Stats, error) {
	stats := &Stats{}
	for _, key := range keys {
		doc, err := u.exporter.ExportCollection(ctx, key)
		if errors.Is(err, transfer.ErrNothingToExport) {
			u.log.Info("nothing to push", "key", key)
			stats.Empty = append(stats.Empty, key)
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("exporting %s: %w", key, err)
		}

		hash := HashDocument(doc)
		if u.state != nil && !u.force {
			done, err := u.state.IsPushed(u.server, key, hash)
			if err != nil {
				u.log.Warn("reading push state", "key", key, "error", err)
			}
			if done {
				u.log.Info("unchanged since last push", "key", key)
				stats.Skipped = append(stats.Skipped, key)
				continue
			}
		}

		result, err := u.client.Push(ctx, key, policy, doc)
		if err != nil {
			return stats, err
		}
		u.log.Info("pushed", "key", key, "imported", result.Imported, "skipped", result.Skipped)
		stats.Pushed = append(stats.Pushed, result)

		if u.state != nil {
			if err := u.state.MarkPushed(u.server, key, hash); err != nil {
				u.log.Warn("recording push state", "key", key, "error", err)
			}
		}
	}
	return stats, nil
}
