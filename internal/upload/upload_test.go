package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/claude/repbook/internal/editor"
	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/repository"
	"github.com/claude/repbook/internal/server"
	"github.com/claude/repbook/internal/storage"
	"github.com/claude/repbook/internal/transfer"
)

func newRepo(log *slog.Logger) *repository.Repository {
	return repository.New(storage.NewMemory(), models.ThemeLight, log)
}

// newRemote starts a real repbook API backed by an in-memory store.
func newRemote(t *testing.T, log *slog.Logger) (*httptest.Server, *repository.Repository) {
	t.Helper()
	repo := newRepo(log)
	srv := server.New(repo, editor.New(repo, log), transfer.New(repo, log), server.Options{}, log)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, repo
}

// TestStateDB records and compares pushed hashes per server and key.
func TestStateDB(t *testing.T) {
	state, err := OpenStateDB(t.TempDir() + "/nested")
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	hash := HashDocument([]byte(`[]`))
	if done, err := state.IsPushed("http://a", "exercises", hash); err != nil || done {
		t.Fatalf("fresh state: %v, %v", done, err)
	}
	if err := state.MarkPushed("http://a", "exercises", hash); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}
	if done, _ := state.IsPushed("http://a", "exercises", hash); !done {
		t.Error("same hash should be pushed")
	}
	if done, _ := state.IsPushed("http://b", "exercises", hash); done {
		t.Error("other server should not be pushed")
	}
	if done, _ := state.IsPushed("http://a", "exercises", HashDocument([]byte(`[{}]`))); done {
		t.Error("changed document should not be pushed")
	}
}

// TestUploaderRun pushes local collections to a live server and skips them when unchanged.
func TestUploaderRun(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	remote, remoteRepo := newRemote(t, log)

	local := newRepo(log)
	if _, err := local.AddExercise(ctx, models.Exercise{ID: "1", Name: "Squat", MuscleGroup: "Legs", Sets: 3, Reps: 10}); err != nil {
		t.Fatal(err)
	}
	if _, err := local.AddSession(ctx, models.Session{ID: "s1", Name: "Leg day", Exercises: []models.SessionExercise{}}); err != nil {
		t.Fatal(err)
	}

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	keys := []string{models.KeyExercises, models.KeySessions}
	up := New(newFastClient(remote.URL, ""), state, transfer.New(local, log), false, log)
	stats, err := up.Run(ctx, keys, transfer.PolicyMerge)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(stats.Pushed) != 2 {
		t.Fatalf("pushed = %d, want 2", len(stats.Pushed))
	}
	if got := remoteRepo.LoadExercises(ctx); len(got) != 1 || got[0].Name != "Squat" {
		t.Errorf("remote exercises = %+v", got)
	}
	if got := remoteRepo.LoadSessions(ctx); len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("remote sessions = %+v", got)
	}

	stats, err = up.Run(ctx, keys, transfer.PolicyMerge)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if diff := cmp.Diff(keys, stats.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}

	forced := New(newFastClient(remote.URL, ""), state, transfer.New(local, log), true, log)
	stats, err = forced.Run(ctx, keys, transfer.PolicyMerge)
	if err != nil {
		t.Fatalf("forced Run: %v", err)
	}
	if len(stats.Pushed) != 2 || stats.Pushed[0].Skipped != 1 {
		t.Errorf("forced stats = %+v", stats.Pushed)
	}
}

// TestUploaderRunEmpty reports collections with nothing to export.
func TestUploaderRunEmpty(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	remote, _ := newRemote(t, log)

	up := New(newFastClient(remote.URL, ""), nil, transfer.New(newRepo(log), log), false, log)
	stats, err := up.Run(context.Background(), []string{models.KeyExercises}, transfer.PolicyReplace)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{models.KeyExercises}, stats.Empty); diff != "" {
		t.Errorf("empty mismatch (-want +got):\n%s", diff)
	}
}
