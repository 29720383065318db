package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/google/uuid"
)

// Convert turns a validated manifest into project records, one per entry
// and in entry order. Entries without an id get a new UUID. References that
// match another entry's id or path become that entry's ID; any other
// reference is kept verbatim and may point at a project outside the
// manifest.
// Call ValidateManifest first; Convert assumes the manifest is valid.
func Convert(m *Manifest, baseDir string) ([]*domain.Project, error) {
	now := time.Now().UTC()

	projects := make([]*domain.Project, 0, len(m.Projects))
	byPath := make(map[string]string, len(m.Projects)) // abs path -> ID
	byID := make(map[string]string, len(m.Projects))   // lower-case id -> ID

	for _, e := range m.Projects {
		id := strings.ToLower(e.ID)
		if id == "" {
			id = uuid.New().String()
		}
		p := &domain.Project{
			ID:                 id,
			Name:               strings.TrimSpace(e.Name),
			FilePath:           resolvePath(baseDir, e.Path),
			SourceControlBound: e.SourceControlBound,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		byPath[p.FilePath] = p.ID
		byID[p.ID] = p.ID
		projects = append(projects, p)
	}

	for i, e := range m.Projects {
		p := projects[i]
		seen := make(map[string]bool, len(e.References))
		for _, ref := range e.References {
			target := resolveReference(ref, baseDir, byID, byPath)
			if seen[target] {
				continue
			}
			seen[target] = true
			p.References = append(p.References, target)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("projects[%d]: %w", i, err)
		}
	}

	return projects, nil
}

func resolveReference(ref, baseDir string, byID, byPath map[string]string) string {
	if id, ok := byID[strings.ToLower(ref)]; ok {
		return id
	}
	if id, ok := byPath[resolvePath(baseDir, ref)]; ok {
		return id
	}
	if _, err := uuid.Parse(ref); err == nil {
		return strings.ToLower(ref)
	}
	return ref
}
