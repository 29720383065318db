package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	catalog, err := repository.LoadCatalog(ctx, s.projects)
	if err != nil {
		return nil, err
	}
	return catalog.Find(ref)
}

func (s *projectService) Show(ctx context.Context, ref string) (*ProjectDetail, error) {
	catalog, err := repository.LoadCatalog(ctx, s.projects)
	if err != nil {
		return nil, err
	}
	p, err := catalog.Find(ref)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{Project: p}
	for _, id := range p.References {
		if target, ok := catalog.Resolve(id); ok {
			detail.References = append(detail.References, target)
		} else {
			detail.Unresolved = append(detail.Unresolved, id)
		}
	}

	detail.Referrers, err = s.projects.ListReferrers(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *projectService) Remove(ctx context.Context, ref string) (p *domain.Project, err error) {
	finish := observeUseCase(ctx, s.observer, "remove-project", map[string]any{"ref": ref})
	defer func() { finish(err) }()

	p, err = s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err = s.projects.Delete(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("removing project %q: %w", p.Name, err)
	}
	return p, nil
}
