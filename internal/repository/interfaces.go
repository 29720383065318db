package repository

import (
	"context"

	"github.com/alexanderramin/solutionizer/internal/domain"
)

// ProjectRepo stores project records and their ordered references.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	Upsert(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListReferrers(ctx context.Context, id string) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
