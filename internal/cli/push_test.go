package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/claude/repbook/internal/editor"
	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/repository"
	"github.com/claude/repbook/internal/server"
	"github.com/claude/repbook/internal/storage"
	"github.com/claude/repbook/internal/transfer"
	"github.com/claude/repbook/internal/upload"
)

// TestPushCommand sends the local exercises to a running server, then skips them.
func TestPushCommand(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	remoteRepo := repository.New(storage.NewMemory(), models.ThemeLight, log)
	remote := httptest.NewServer(server.New(remoteRepo, editor.New(remoteRepo, log), transfer.New(remoteRepo, log), server.Options{APIKey: "k"}, log))
	defer remote.Close()

	db := filepath.Join(t.TempDir(), "repbook.db")
	stateDir := t.TempDir()
	mustRun(t, db, "exercises", "add", "--name", "Squat", "-m", "Jambes", "--sets", "3", "--reps", "10")

	if _, err := runCLI(t, db, "", "push", "--remote", remote.URL, "--state-dir", stateDir); err == nil {
		t.Error("expected error without api key")
	}

	stats := decode[upload.Stats](t, mustRun(t, db, "push", "exercises", "--remote", remote.URL, "--api-key", "k", "--state-dir", stateDir))
	if len(stats.Pushed) != 1 || stats.Pushed[0].Imported != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if got := remoteRepo.LoadExercises(context.Background()); len(got) != 1 || got[0].Name != "Squat" {
		t.Errorf("remote exercises = %+v", got)
	}

	stats = decode[upload.Stats](t, mustRun(t, db, "push", "--remote", remote.URL, "--api-key", "k", "--state-dir", stateDir))
	if len(stats.Pushed) != 0 || len(stats.Skipped) != 1 || len(stats.Empty) != 1 {
		t.Errorf("second push stats = %+v", stats)
	}

	if _, err := runCLI(t, db, "", "push", "--remote", remote.URL, "--policy", "append"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
