package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/importer"
	"github.com/alexanderramin/solutionizer/internal/solution"
)

var (
	// ErrNoSession is returned by solution operations before Open.
	ErrNoSession = errors.New("no open solution")
	// ErrItemNotFound is returned when a display path names no item.
	ErrItemNotFound = errors.New("solution item not found")
)

// ProjectDetail is a project with its references resolved against the
// repository.
type ProjectDetail struct {
	Project    *domain.Project
	References []*domain.Project
	Unresolved []string
	Referrers  []*domain.Project
}

type ProjectService interface {
	List(ctx context.Context) ([]*domain.Project, error)
	// Resolve finds a project by ID, name, or ID prefix.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	Show(ctx context.Context, ref string) (*ProjectDetail, error)
	Remove(ctx context.Context, ref string) (*domain.Project, error)
}

// ImportResult holds the outcome of a manifest import.
type ImportResult struct {
	Projects []*domain.Project
	Created  int
	Updated  int
	// Dangling lists reference IDs that match no stored project.
	Dangling []string
}

type ImportService interface {
	ImportManifest(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromManifest(ctx context.Context, m *importer.Manifest, baseDir string) (*ImportResult, error)
}

// SolutionSnapshot is a read-only view of the open solution.
type SolutionSnapshot struct {
	RootPath           string
	Entries            []solution.Entry
	Dirty              bool
	HasItems           bool
	SourceControlBound bool
	Stats              solution.Stats
}

type SolutionService interface {
	// Open starts a new session rooted at rootPath, replacing any open one.
	Open(ctx context.Context, rootPath string, settings solution.Settings) error
	// Add resolves ref and adds the project with its references.
	Add(ctx context.Context, ref string) (*domain.Project, error)
	// Remove removes the item at a display path such as _References/libs/Core.
	Remove(ctx context.Context, path string) error
	Snapshot(ctx context.Context) (*SolutionSnapshot, error)
}
