package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/solutionizer/internal/db"
	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/importer"
	"github.com/alexanderramin/solutionizer/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService creates an ImportService. Every import runs in a single
// transaction on uow.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportManifest(ctx context.Context, filePath string) (*ImportResult, error) {
	m, err := importer.LoadManifest(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path: %w", err)
	}
	return s.ImportFromManifest(ctx, m, filepath.Dir(abs))
}

func (s *importService) ImportFromManifest(ctx context.Context, m *importer.Manifest, baseDir string) (result *ImportResult, err error) {
	fields := map[string]any{"base_dir": baseDir}
	finish := observeUseCase(ctx, s.observer, "import-manifest", fields)
	defer func() { finish(err) }()

	if errs := importer.ValidateManifest(m, baseDir); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	projects, err := importer.Convert(m, baseDir)
	if err != nil {
		return nil, fmt.Errorf("converting manifest: %w", err)
	}
	fields["project_count"] = len(projects)

	result = &ImportResult{Projects: projects}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteProjectRepo(tx)

		existing, err := repo.List(ctx)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(existing)+len(projects))
		for _, p := range existing {
			known[p.ID] = true
		}
		adoptStoredIDs(m, projects, existing)

		for _, p := range projects {
			if known[p.ID] {
				result.Updated++
			} else {
				result.Created++
			}
			if err := repo.Upsert(ctx, p); err != nil {
				return fmt.Errorf("storing project %q: %w", p.Name, err)
			}
			known[p.ID] = true
		}

		dangling := make(map[string]bool)
		for _, p := range projects {
			for _, ref := range p.References {
				if !known[ref] && !dangling[ref] {
					dangling[ref] = true
					result.Dangling = append(result.Dangling, ref)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = result.Created
	fields["updated"] = result.Updated
	return result, nil
}

// adoptStoredIDs gives every project whose manifest entry has no id the ID
// already stored for its file path, and rewrites references to the
// generated IDs it replaces. projects must be in manifest entry order.
func adoptStoredIDs(m *importer.Manifest, projects, existing []*domain.Project) {
	byPath := make(map[string]string, len(existing))
	for _, p := range existing {
		byPath[p.FilePath] = p.ID
	}

	replaced := make(map[string]string)
	for i, p := range projects {
		if m.Projects[i].ID != "" {
			continue
		}
		if id, ok := byPath[p.FilePath]; ok && id != p.ID {
			replaced[p.ID] = id
			p.ID = id
		}
	}
	if len(replaced) == 0 {
		return
	}

	for _, p := range projects {
		refs := make([]string, 0, len(p.References))
		seen := make(map[string]bool, len(p.References))
		for _, ref := range p.References {
			if id, ok := replaced[ref]; ok {
				ref = id
			}
			if seen[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
		}
		p.References = refs
	}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("manifest validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
