package formatter

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/service"
	"github.com/alexanderramin/solutionizer/internal/solution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTree_Connectors(t *testing.T) {
	items := []TreeItem{
		{Title: "_References", Level: 1, Folder: true},
		{Title: "libs", Level: 2, IsLast: true, AncestorsLast: []bool{false}, Folder: true},
		{Title: "Core", Level: 3, IsLast: true, AncestorsLast: []bool{false, true}},
		{Title: "Web", Level: 1, IsLast: true},
		{Title: "Api", Level: 2, IsLast: true, AncestorsLast: []bool{true}},
	}

	got := stripANSI(RenderTree(items))
	want := strings.Join([]string{
		"├─ _References/",
		"│  └─ libs/",
		"│     └─ Core",
		"└─ Web",
		"   └─ Api",
	}, "\n") + "\n"
	assert.Equal(t, want, got)
}

func TestRenderTree_BadgesAligned(t *testing.T) {
	items := []TreeItem{
		{Title: "A", Level: 1, Detail: "1"},
		{Title: "Longer", Level: 1, IsLast: true, Detail: "2"},
	}
	lines := strings.Split(strings.TrimRight(stripANSI(RenderTree(items)), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Index(lines[0], "["), strings.Index(lines[1], "["))
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}

func TestRelPath(t *testing.T) {
	assert.Equal(t, "libs/core/core.proj", RelPath("/repo", "/repo/libs/core/core.proj"))
	assert.Equal(t, "/other/x.proj", RelPath("/repo", "/other/x.proj"))
	assert.Equal(t, "/x.proj", RelPath("", "/x.proj"))
}

func TestHumanTimestamp(t *testing.T) {
	assert.Equal(t, "Just now", HumanTimestamp(time.Now()))
	assert.Equal(t, "5m ago", HumanTimestamp(time.Now().Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "Sep 30, 2022", HumanTimestamp(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC)))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "NAME"}, [][]string{{"a", "Core"}, {"abcdef", "Web"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[0], "NAME"), strings.Index(lines[2], "Core"))
	assert.Equal(t, strings.Index(lines[2], "Core"), strings.Index(lines[3], "Web"))
}

func sampleSnapshot() *service.SolutionSnapshot {
	core := &domain.Project{ID: "cccccccc-0000", Name: "Core", FilePath: "/repo/libs/core/core.proj", SourceControlBound: true}
	web := &domain.Project{ID: "wwwwwwww-0000", Name: "Web", FilePath: "/repo/apps/web/web.proj", References: []string{core.ID}}
	tree := solution.New("/repo", solution.ResolverFunc(func(id string) (*domain.Project, bool) {
		if id == core.ID {
			return core, true
		}
		return nil, false
	}))
	tree.AddProject(web)

	return &service.SolutionSnapshot{
		RootPath:           tree.RootPath(),
		Entries:            tree.Entries(),
		Dirty:              tree.Dirty(),
		HasItems:           tree.HasItems(),
		SourceControlBound: tree.SourceControlBound(),
		Stats:              tree.Stats(),
	}
}

func TestFormatSolution(t *testing.T) {
	out := stripANSI(FormatSolution(sampleSnapshot()))

	assert.Contains(t, out, "SOLUTION")
	assert.Contains(t, out, "├─ _References/")
	assert.Contains(t, out, "│  └─ libs/")
	assert.Contains(t, out, "│     └─ Core")
	assert.Contains(t, out, "└─ Web")
	assert.Contains(t, out, "[ wwwwwwww ]")
	assert.Contains(t, out, "● DIRTY")
	assert.Contains(t, out, "● SCC BOUND")
	assert.Contains(t, out, "1 explicit · 1 referenced · 2 folders")
}

func TestFormatSolution_Empty(t *testing.T) {
	out := stripANSI(FormatSolution(&service.SolutionSnapshot{RootPath: "/repo"}))
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "○ DIRTY")
}

func TestRenderPlainTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPlainTree(&buf, sampleSnapshot()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "/repo\n"))
	assert.Contains(t, out, "_References/")
	assert.Contains(t, out, "libs/")
	assert.Contains(t, out, "Core (cccccccc)")
	assert.Contains(t, out, "└── Web (wwwwwwww)")
	assert.Less(t, strings.Index(out, "_References/"), strings.Index(out, "Web"))
	assert.Contains(t, out, "dirty: yes\nhas items: yes\nscc bound: yes\n")
	assert.Equal(t, out, stripANSI(out), "plain output carries no styling")
}

func TestRenderPlainTree_SameNamedSiblingsStayDistinct(t *testing.T) {
	a := &domain.Project{ID: "aaaaaaaa-0000", Name: "Core", FilePath: "/repo/a/core/core.proj"}
	b := &domain.Project{ID: "bbbbbbbb-0000", Name: "Core", FilePath: "/repo/b/core/core.proj"}
	tree := solution.New("/repo", solution.ResolverFunc(func(string) (*domain.Project, bool) { return nil, false }))
	tree.AddProject(a)
	tree.AddProject(b)

	var buf bytes.Buffer
	require.NoError(t, RenderPlainTree(&buf, &service.SolutionSnapshot{
		RootPath: tree.RootPath(),
		Entries:  tree.Entries(),
		Stats:    tree.Stats(),
	}))
	out := buf.String()

	assert.Contains(t, out, "├── Core (aaaaaaaa)")
	assert.Contains(t, out, "└── Core (bbbbbbbb)")
}

func TestFormatProjectDetail(t *testing.T) {
	core := &domain.Project{ID: "cccccccc-1111", Name: "Core"}
	detail := &service.ProjectDetail{
		Project:    &domain.Project{ID: "wwwwwwww-1111", Name: "Web", FilePath: "/repo/web.proj", UpdatedAt: time.Now()},
		References: []*domain.Project{core},
		Unresolved: []string{"gone"},
	}

	out := stripANSI(FormatProjectDetail(detail))
	assert.Contains(t, out, "Web")
	assert.Contains(t, out, "/repo/web.proj")
	assert.Contains(t, out, "cccccccc Core")
	assert.Contains(t, out, "gone (unknown)")
	assert.Contains(t, out, "REFERENCED BY")
	assert.Contains(t, out, "none")
}

func TestFormatProjectList(t *testing.T) {
	projects := []*domain.Project{
		{ID: "aaaaaaaa-1", Name: "Core", FilePath: "/repo/libs/core/core.proj", SourceControlBound: true},
		{ID: "bbbbbbbb-2", Name: "Web", FilePath: "/repo/apps/web/web.proj", References: []string{"aaaaaaaa-1"}},
	}
	out := stripANSI(FormatProjectList(projects, "/repo"))
	assert.Contains(t, out, "PROJECTS (2)")
	assert.Contains(t, out, "libs/core/core.proj")
	assert.Contains(t, out, "scc")
	assert.Contains(t, out, "aaaaaaaa")
}

func TestFormatImportResult(t *testing.T) {
	out := stripANSI(FormatImportResult(&service.ImportResult{
		Projects: make([]*domain.Project, 3),
		Created:  2,
		Updated:  1,
		Dangling: []string{"x"},
	}))
	assert.Contains(t, out, "Imported 3 projects (2 created, 1 updated)")
	assert.Contains(t, out, "1 references point at unknown projects: x")
}
