package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/solutionizer/internal/db"
	"github.com/alexanderramin/solutionizer/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo on a SQLite database or
// transaction.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, name, file_path, scc_bound, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.FilePath,
		boolToInt(p.SourceControlBound),
		p.CreatedAt.UTC().Format(timeLayout),
		p.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.insertReferences(ctx, p)
}

// Upsert inserts p or replaces the stored record with the same ID,
// including its reference list. CreatedAt of an existing row is kept.
func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			file_path = excluded.file_path,
			scc_bound = excluded.scc_bound,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.FilePath,
		boolToInt(p.SourceControlBound),
		p.CreatedAt.UTC().Format(timeLayout),
		p.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upserting project: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_references WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing references of %q: %w", p.Name, err)
	}
	return r.insertReferences(ctx, p)
}

func (r *SQLiteProjectRepo) insertReferences(ctx context.Context, p *domain.Project) error {
	query := `INSERT OR IGNORE INTO project_references (project_id, reference_id, ordinal) VALUES (?, ?, ?)`
	for i, ref := range p.References {
		if _, err := r.db.ExecContext(ctx, query, p.ID, ref, i); err != nil {
			return fmt.Errorf("inserting reference %q of %q: %w", ref, p.Name, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
		}
		return nil, err
	}
	refs, err := r.references(ctx, `WHERE project_id = ?`, id)
	if err != nil {
		return nil, err
	}
	p.References = refs[p.ID]
	return p, nil
}

// List returns all projects ordered by name, ignoring case.
func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY name COLLATE NOCASE, id`
	projects, err := r.queryProjects(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	refs, err := r.references(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		p.References = refs[p.ID]
	}
	return projects, nil
}

// ListReferrers returns the projects whose reference list contains id.
func (r *SQLiteProjectRepo) ListReferrers(ctx context.Context, id string) ([]*domain.Project, error) {
	query := `SELECT p.id, p.name, p.file_path, p.scc_bound, p.created_at, p.updated_at
		FROM projects p JOIN project_references pr ON pr.project_id = p.id
		WHERE pr.reference_id = ?
		ORDER BY p.name COLLATE NOCASE, p.id`
	projects, err := r.queryProjects(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing referrers of %q: %w", id, err)
	}
	for _, p := range projects {
		refs, err := r.references(ctx, `WHERE project_id = ?`, p.ID)
		if err != nil {
			return nil, err
		}
		p.References = refs[p.ID]
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	return nil
}

// queryProjects reads every row before returning so the connection is free
// for follow-up queries.
func (r *SQLiteProjectRepo) queryProjects(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// references returns reference IDs keyed by project ID, in declaration order.
func (r *SQLiteProjectRepo) references(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	query := `SELECT project_id, reference_id FROM project_references ` + where + ` ORDER BY project_id, ordinal`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var projectID, refID string
		if err := rows.Scan(&projectID, &refID); err != nil {
			return nil, fmt.Errorf("scanning reference: %w", err)
		}
		out[projectID] = append(out[projectID], refID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var scc int
	var createdAtStr, updatedAtStr string

	if err := row.Scan(&p.ID, &p.Name, &p.FilePath, &scc, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.SourceControlBound = intToBool(scc)

	var err error
	if p.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
