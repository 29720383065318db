package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/repository"
	"github.com/alexanderramin/solutionizer/internal/solution"
)

type solutionService struct {
	projects repository.ProjectRepo
	logger   *slog.Logger
	observer UseCaseObserver

	mu      sync.Mutex
	catalog *repository.Catalog
	tree    *solution.Tree
}

// NewSolutionService creates a SolutionService. logger receives the tree's
// own diagnostics; nil discards them.
func NewSolutionService(projects repository.ProjectRepo, logger *slog.Logger, observers ...UseCaseObserver) SolutionService {
	return &solutionService{
		projects: projects,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *solutionService) Open(ctx context.Context, rootPath string, settings solution.Settings) (err error) {
	fields := map[string]any{
		"root":              rootPath,
		"follow_references": settings.FollowReferences,
		"depth":             settings.ReferenceDepth,
	}
	finish := observeUseCase(ctx, s.observer, "open-solution", fields)
	defer func() { finish(err) }()

	catalog, err := repository.LoadCatalog(ctx, s.projects)
	if err != nil {
		return err
	}
	fields["catalog_size"] = catalog.Len()

	opts := []solution.Option{solution.WithSettings(settings)}
	if s.logger != nil {
		opts = append(opts, solution.WithLogger(s.logger))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	s.tree = solution.New(rootPath, catalog, opts...)
	return nil
}

func (s *solutionService) Add(ctx context.Context, ref string) (p *domain.Project, err error) {
	fields := map[string]any{"ref": ref}
	finish := observeUseCase(ctx, s.observer, "add-project", fields)
	defer func() { finish(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil {
		return nil, ErrNoSession
	}

	p, err = s.catalog.Find(ref)
	if err != nil {
		return nil, err
	}
	s.tree.AddProject(p)
	fields["project"] = p.Name
	fields["tree_projects"] = len(s.tree.Projects())
	return p, nil
}

func (s *solutionService) Remove(ctx context.Context, path string) (err error) {
	finish := observeUseCase(ctx, s.observer, "remove-item", map[string]any{"path": path})
	defer func() { finish(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil {
		return ErrNoSession
	}

	item := s.tree.Find(path)
	if item == nil {
		return fmt.Errorf("%w: %s", ErrItemNotFound, path)
	}
	s.tree.RemoveItem(item)
	return nil
}

func (s *solutionService) Snapshot(ctx context.Context) (*SolutionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil {
		return nil, ErrNoSession
	}

	return &SolutionSnapshot{
		RootPath:           s.tree.RootPath(),
		Entries:            s.tree.Entries(),
		Dirty:              s.tree.Dirty(),
		HasItems:           s.tree.HasItems(),
		SourceControlBound: s.tree.SourceControlBound(),
		Stats:              s.tree.Stats(),
	}, nil
}
