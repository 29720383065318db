package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/solutionizer/internal/config"
	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/repository"
	"github.com/alexanderramin/solutionizer/internal/service"
	"github.com/alexanderramin/solutionizer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(database)

	return &App{
		Projects: service.NewProjectService(projRepo),
		Import:   service.NewImportService(testutil.NewTestUoW(database)),
		Solution: service.NewSolutionService(projRepo, nil),
		Settings: config.Settings{
			RootPath:         testutil.TestRoot,
			FollowReferences: true,
			ReferenceDepth:   2,
		},
	}
}

// executeCmd runs a cobra command and captures stdout/stderr with ANSI codes
// stripped.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

const manifest = `projects:
  - name: Core
    path: libs/core/core.proj
    scc_bound: true
  - name: Util
    path: libs/util/util.proj
    references: [libs/core/core.proj]
  - name: Web
    path: apps/web/web.proj
    references: [libs/util/util.proj, missing-project]
`

// importManifest writes the sample manifest under the test root layout and
// imports it, returning the manifest directory.
func importManifest(t *testing.T, app *App) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	out, err := executeCmd(t, app, "project", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 projects (3 created, 0 updated)")
	assert.Contains(t, out, "missing-project")
	app.Settings.RootPath = dir
	return dir
}

func TestProjectImportAndList(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	out, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PROJECTS (3)")
	assert.Contains(t, out, "libs/core/core.proj")
	assert.Contains(t, out, "apps/web/web.proj")
}

func TestProjectList_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "project", "list")
	require.NoError(t, err)
	assert.Equal(t, "No projects found.\n", out)
}

func TestProjectShow(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	out, err := executeCmd(t, app, "project", "show", "util")
	require.NoError(t, err)
	assert.Contains(t, out, "Util")
	assert.Contains(t, out, "Core")
	assert.Contains(t, out, "REFERENCED BY")
	assert.Contains(t, out, "Web")
}

func TestProjectShow_NotFound(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "project", "show", "nope")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectRemove(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	out, err := executeCmd(t, app, "project", "remove", "Web")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed project Web")

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestSolutionBuild(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	out, err := executeCmd(t, app, "solution", "build", "web")
	require.NoError(t, err)
	assert.Contains(t, out, "├─ _References/")
	assert.Contains(t, out, "│  └─ libs/")
	assert.Contains(t, out, "│     ├─ Core")
	assert.Contains(t, out, "│     └─ Util")
	assert.Contains(t, out, "└─ Web")
	assert.Contains(t, out, "● DIRTY")
	assert.Contains(t, out, "● SCC BOUND")
	assert.Contains(t, out, "1 explicit · 2 referenced · 2 folders")
}

func TestSolutionBuild_DepthZero(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	out, err := executeCmd(t, app, "solution", "build", "Web", "--depth", "0", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Util")
	assert.NotContains(t, out, "Core")
	assert.Contains(t, out, "scc bound: no")
}

func TestSolutionBuild_NoFollow(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	out, err := executeCmd(t, app, "solution", "build", "Web", "--follow-references=false", "--plain")
	require.NoError(t, err)
	assert.NotContains(t, out, "_References")
	assert.Contains(t, out, "└── Web")
}

func TestSolutionBuild_PromotionAndRemove(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	out, err := executeCmd(t, app, "solution", "build", "Web", "Core",
		"--remove", "_References/libs/Util", "--plain")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	var names []string
	for _, l := range lines {
		if strings.Contains(l, "── ") {
			name := l[strings.Index(l, "── ")+len("── "):]
			if i := strings.Index(name, " ("); i >= 0 {
				name = name[:i]
			}
			names = append(names, name)
		}
	}
	assert.Equal(t, []string{"_References/", "libs/", "Core", "Web"}, names)
	assert.Contains(t, out, "2 explicit · 0 referenced · 2 folders")
}

func TestSolutionBuild_RemoveUnknownPath(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	_, err := executeCmd(t, app, "solution", "build", "Web", "--remove", "Nope")
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestSolutionBuild_NoRefsNonInteractive(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "solution", "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no projects given")
}

func TestSolutionBuild_Picker(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)
	app.IsInteractive = func() bool { return true }

	var offered []string
	app.PickProjects = func(projects []*domain.Project) ([]string, error) {
		for _, p := range projects {
			offered = append(offered, p.Name)
		}
		return []string{projects[0].ID}, nil
	}

	out, err := executeCmd(t, app, "solution", "build", "--plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"Core", "Util", "Web"}, offered)
	assert.Contains(t, out, "└── Core")
	assert.Contains(t, out, "has items: yes")
}

func TestSolutionBuild_NegativeDepth(t *testing.T) {
	app := testApp(t)
	importManifest(t, app)

	_, err := executeCmd(t, app, "solution", "build", "Web", "--depth", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--depth")
}
