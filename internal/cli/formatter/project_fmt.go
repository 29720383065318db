package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/service"
)

// FormatProjectList renders the project table inside a bordered box. Paths
// are shown relative to root when possible.
func FormatProjectList(projects []*domain.Project, root string) string {
	headers := []string{"ID", "NAME", "PATH", "REFS", "SCC"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			StyleFg.Render(RelPath(root, p.FilePath)),
			fmt.Sprintf("%d", len(p.References)),
			SCCBadge(p.SourceControlBound),
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox(fmt.Sprintf("Projects (%d)", len(projects)), table)
}

// FormatProjectDetail renders one project with its resolved references and
// the projects that reference it.
func FormatProjectDetail(d *service.ProjectDetail) string {
	p := d.Project
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID     "), StyleFg.Render(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("FILE   "), StyleFg.Render(p.FilePath)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SCC    "), SCCBadge(p.SourceControlBound)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED"), StyleFg.Render(HumanTimestamp(p.UpdatedAt))))

	b.WriteString("\n" + Header("References") + "\n")
	if len(d.References) == 0 && len(d.Unresolved) == 0 {
		b.WriteString(Dim("none") + "\n")
	}
	for _, ref := range d.References {
		b.WriteString(fmt.Sprintf("%s %s\n", TruncID(ref.ID), StyleFg.Render(ref.Name)))
	}
	for _, id := range d.Unresolved {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleRed.Render("?"), StyleDim.Render(id+" (unknown)")))
	}

	b.WriteString("\n" + Header("Referenced by") + "\n")
	if len(d.Referrers) == 0 {
		b.WriteString(Dim("none") + "\n")
	}
	for _, ref := range d.Referrers {
		b.WriteString(fmt.Sprintf("%s %s\n", TruncID(ref.ID), StyleFg.Render(ref.Name)))
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// FormatImportResult summarizes a manifest import.
func FormatImportResult(r *service.ImportResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Imported %d projects (%s created, %s updated)\n",
		len(r.Projects),
		StyleGreen.Render(fmt.Sprintf("%d", r.Created)),
		StyleYellow.Render(fmt.Sprintf("%d", r.Updated)),
	))
	if len(r.Dangling) > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d references point at unknown projects: %s",
			len(r.Dangling), strings.Join(r.Dangling, ", "))) + "\n")
	}
	return b.String()
}
