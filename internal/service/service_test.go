package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/repository"
	"github.com/alexanderramin/solutionizer/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

// seedProjects stores projects in a fresh database and returns its repo.
func seedProjects(t *testing.T, projects ...*domain.Project) *repository.SQLiteProjectRepo {
	t.Helper()
	repo := repository.NewSQLiteProjectRepo(testutil.NewTestDB(t))
	for _, p := range projects {
		require.NoError(t, repo.Create(context.Background(), p))
	}
	return repo
}
