package testutil

import (
	"path/filepath"
	"time"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/google/uuid"
)

// TestRoot is the root path used by fixtures that do not set a file path.
var TestRoot = filepath.FromSlash("/repo")

// Project options
type ProjectOption func(*domain.Project)

// WithID replaces the generated UUID.
func WithID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ID = id
	}
}

// WithFilePath sets the project file path. Relative paths are joined to
// TestRoot.
func WithFilePath(path string) ProjectOption {
	return func(p *domain.Project) {
		path = filepath.FromSlash(path)
		if !filepath.IsAbs(path) {
			path = filepath.Join(TestRoot, path)
		}
		p.FilePath = path
	}
}

func WithReferences(ids ...string) ProjectOption {
	return func(p *domain.Project) {
		p.References = append(p.References, ids...)
	}
}

func WithSourceControl() ProjectOption {
	return func(p *domain.Project) {
		p.SourceControlBound = true
	}
}

// NewTestProject returns a valid project named name stored at
// TestRoot/<name>/<name>.proj unless an option says otherwise.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		FilePath:  filepath.Join(TestRoot, name, name+".proj"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
