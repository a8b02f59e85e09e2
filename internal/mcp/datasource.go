package mcp

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/repository"
	"github.com/claude/repbook/internal/transfer"
	"github.com/claude/repbook/internal/views"
)

// DataSource abstracts the data layer for MCP tools. Both Local (direct store
// access) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListExercises(ctx context.Context, query string, sort views.SortCriterion) (views.ExerciseList, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	GetSession(ctx context.Context, id string) (views.SessionDetail, error)
	ExportSessions(ctx context.Context) ([]models.EnrichedSession, error)
}

// Local serves MCP requests straight from the repository.
type Local struct {
	repo   *repository.Repository
	locale language.Tag
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal creates a Local data source. locale drives name collation.
func NewLocal(repo *repository.Repository, locale language.Tag) *Local {
	return &Local{repo: repo, locale: locale}
}

func (l *Local) ListExercises(ctx context.Context, query string, sort views.SortCriterion) (views.ExerciseList, error) {
	return views.ListExercises(l.repo.LoadExercises(ctx), views.ListOptions{
		Query:  query,
		Sort:   sort,
		Locale: l.locale,
	}), nil
}

func (l *Local) ListSessions(ctx context.Context) ([]models.Session, error) {
	return l.repo.LoadSessions(ctx), nil
}

func (l *Local) GetSession(ctx context.Context, id string) (views.SessionDetail, error) {
	s, err := l.repo.GetSession(ctx, id)
	if err != nil {
		return views.SessionDetail{}, err
	}
	return views.DescribeSession(s, l.repo.LoadExercises(ctx)), nil
}

func (l *Local) ExportSessions(ctx context.Context) ([]models.EnrichedSession, error) {
	sessions := l.repo.LoadSessions(ctx)
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%s: %w", models.KeySessions, transfer.ErrNothingToExport)
	}
	exercises := l.repo.LoadExercises(ctx)
	if len(exercises) == 0 {
		return nil, fmt.Errorf("%s: %w", models.KeyExercises, transfer.ErrNothingToExport)
	}
	return transfer.EnrichSessions(sessions, exercises), nil
}
