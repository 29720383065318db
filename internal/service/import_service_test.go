package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/solutionizer/internal/importer"
	"github.com/alexanderramin/solutionizer/internal/repository"
	"github.com/alexanderramin/solutionizer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coreID = "6f1d2c3b-4a5e-4f60-8a7b-9c0d1e2f3a4b"

func validManifest() *importer.Manifest {
	return &importer.Manifest{Projects: []importer.ProjectEntry{
		{ID: coreID, Name: "Core", Path: "libs/core/core.proj", SourceControlBound: true},
		{Name: "Web", Path: "apps/web/web.proj", References: []string{"libs/core/core.proj", "ext-lib"}},
	}}
}

func TestImportService_ImportFromManifest(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	obs := &recordingObserver{}
	svc := NewImportService(testutil.NewTestUoW(database), obs)
	ctx := context.Background()
	base := filepath.FromSlash("/repo")

	result, err := svc.ImportFromManifest(ctx, validManifest(), base)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, []string{"ext-lib"}, result.Dangling)

	web, err := repo.GetByID(ctx, result.Projects[1].ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "apps", "web", "web.proj"), web.FilePath)
	assert.Equal(t, []string{coreID, "ext-lib"}, web.References)

	ev := obs.last()
	assert.Equal(t, "import-manifest", ev.Name)
	assert.Equal(t, 2, ev.Fields["created"])
}

func TestImportService_ReimportUpdates(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	svc := NewImportService(testutil.NewTestUoW(database))
	ctx := context.Background()
	base := filepath.FromSlash("/repo")

	m := &importer.Manifest{Projects: []importer.ProjectEntry{{ID: coreID, Name: "Core", Path: "core.proj"}}}
	_, err := svc.ImportFromManifest(ctx, m, base)
	require.NoError(t, err)

	m.Projects[0].Name = "CoreRenamed"
	result, err := svc.ImportFromManifest(ctx, m, base)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)

	got, err := repo.GetByID(ctx, coreID)
	require.NoError(t, err)
	assert.Equal(t, "CoreRenamed", got.Name)
}

func TestImportService_ReimportWithoutIDsKeepsStoredIDs(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	svc := NewImportService(testutil.NewTestUoW(database))
	ctx := context.Background()
	base := filepath.FromSlash("/repo")

	first, err := svc.ImportFromManifest(ctx, validManifest(), base)
	require.NoError(t, err)
	webID := first.Projects[1].ID

	second, err := svc.ImportFromManifest(ctx, validManifest(), base)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Equal(t, webID, second.Projects[1].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportService_ReimportWithoutIDsRemapsReferences(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	svc := NewImportService(testutil.NewTestUoW(database))
	ctx := context.Background()
	base := filepath.FromSlash("/repo")

	manifest := func(webName string) *importer.Manifest {
		return &importer.Manifest{Projects: []importer.ProjectEntry{
			{Name: "Util", Path: "libs/util/util.proj"},
			{Name: webName, Path: "apps/web/web.proj", References: []string{"libs/util/util.proj"}},
		}}
	}

	first, err := svc.ImportFromManifest(ctx, manifest("Web"), base)
	require.NoError(t, err)
	utilID := first.Projects[0].ID
	webID := first.Projects[1].ID

	second, err := svc.ImportFromManifest(ctx, manifest("WebRenamed"), base)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Empty(t, second.Dangling)

	web, err := repo.GetByID(ctx, webID)
	require.NoError(t, err)
	assert.Equal(t, "WebRenamed", web.Name)
	assert.Equal(t, []string{utilID}, web.References)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportService_ValidationErrors(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database))

	m := &importer.Manifest{Projects: []importer.ProjectEntry{{Path: "a.proj"}, {Name: "B"}}}
	_, err := svc.ImportFromManifest(context.Background(), m, "/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest validation failed (2 errors)")
	assert.Contains(t, err.Error(), "projects[0].name is required")
	assert.Contains(t, err.Error(), "projects[1].path is required")
}

func TestImportService_RollbackOnSecondProjectFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	// Exec calls: #1 insert Core, #2 clear Core refs, #3 insert Web, #4 clear Web refs.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 4,
		Err:    fmt.Errorf("injected reference failure"),
	}
	svc := NewImportService(failUoW)

	_, err := svc.ImportFromManifest(ctx, validManifest(), "/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected reference failure")

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects, "no projects should exist after rollback")
}

func TestImportService_ImportManifestFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	svc := NewImportService(testutil.NewTestUoW(database))

	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	body := "projects:\n  - name: Tool\n    path: tools/tool/tool.proj\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	result, err := svc.ImportManifest(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)

	got, err := repo.GetByID(context.Background(), result.Projects[0].ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tools", "tool", "tool.proj"), got.FilePath)

	_, err = svc.ImportManifest(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
