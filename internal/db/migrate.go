package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		file_path   TEXT NOT NULL UNIQUE,
		scc_bound   INTEGER NOT NULL DEFAULT 0 CHECK(scc_bound IN (0, 1)),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	// reference_id is deliberately not a foreign key: a project may refer to
	// one that was never scanned.
	`CREATE TABLE IF NOT EXISTS project_references (
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		reference_id TEXT NOT NULL,
		ordinal      INTEGER NOT NULL,
		PRIMARY KEY (project_id, reference_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name COLLATE NOCASE)`,
	`CREATE INDEX IF NOT EXISTS idx_project_references_target ON project_references(reference_id)`,
}
