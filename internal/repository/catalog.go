package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/solutionizer/internal/domain"
)

// Catalog is an in-memory snapshot of the project repository. It resolves
// reference IDs for the solution tree without touching the database.
type Catalog struct {
	projects []*domain.Project
	byID     map[string]*domain.Project
}

// NewCatalog indexes projects by ID. Later duplicates win.
func NewCatalog(projects []*domain.Project) *Catalog {
	c := &Catalog{
		projects: projects,
		byID:     make(map[string]*domain.Project, len(projects)),
	}
	for _, p := range projects {
		c.byID[p.ID] = p
	}
	return c
}

// LoadCatalog snapshots every project in repo.
func LoadCatalog(ctx context.Context, repo ProjectRepo) (*Catalog, error) {
	projects, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading project catalog: %w", err)
	}
	return NewCatalog(projects), nil
}

// Resolve looks a project up by its exact ID.
func (c *Catalog) Resolve(id string) (*domain.Project, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Projects returns the catalog contents in repository order.
func (c *Catalog) Projects() []*domain.Project {
	return c.projects
}

func (c *Catalog) Len() int { return len(c.projects) }

// Find resolves a user supplied reference: an exact ID, a case-insensitive
// project name, or an unambiguous ID prefix, in that order.
func (c *Catalog) Find(ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("project reference is required")
	}

	if p, ok := c.byID[ref]; ok {
		return p, nil
	}

	var named []*domain.Project
	for _, p := range c.projects {
		if strings.EqualFold(p.Name, ref) {
			named = append(named, p)
		}
	}
	switch len(named) {
	case 1:
		return named[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("%w: %q matches %d projects by name", domain.ErrAmbiguousProject, ref, len(named))
	}

	var prefixed []*domain.Project
	for _, p := range c.projects {
		if strings.HasPrefix(p.ID, ref) {
			prefixed = append(prefixed, p)
		}
	}
	switch len(prefixed) {
	case 0:
		return nil, fmt.Errorf("%w: %q", domain.ErrProjectNotFound, ref)
	case 1:
		return prefixed[0], nil
	default:
		return nil, fmt.Errorf("%w: ID prefix %q matches %d projects", domain.ErrAmbiguousProject, ref, len(prefixed))
	}
}
