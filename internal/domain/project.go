package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Project is a build unit discovered on disk. References holds the IDs of
// the projects it depends on, in declaration order; they may name projects
// that are not known to the repository.
type Project struct {
	ID                 string
	Name               string
	FilePath           string
	References         []string
	SourceControlBound bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate checks the fields every stored project must carry.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project ID is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if p.FilePath == "" {
		return fmt.Errorf("project %q: file path is required", p.Name)
	}
	if !filepath.IsAbs(p.FilePath) {
		return fmt.Errorf("project %q: file path %q must be absolute", p.Name, p.FilePath)
	}
	for _, ref := range p.References {
		if ref == p.ID {
			return fmt.Errorf("project %q references itself", p.Name)
		}
	}
	return nil
}

// Dir returns the directory containing the project file.
func (p *Project) Dir() string {
	return filepath.Dir(p.FilePath)
}

// DisplayID returns the ID truncated to 8 characters for display.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
