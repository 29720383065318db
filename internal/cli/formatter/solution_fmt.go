package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/solutionizer/internal/service"
	"github.com/alexanderramin/solutionizer/internal/solution"
	"github.com/ddddddO/gtree"
)

// SolutionTreeItems converts walk entries to tree rows.
func SolutionTreeItems(entries []solution.Entry) []TreeItem {
	items := make([]TreeItem, 0, len(entries))
	for _, e := range entries {
		item := TreeItem{
			Title:         e.Item.Name(),
			Level:         e.Depth,
			IsLast:        e.IsLast,
			AncestorsLast: e.AncestorsLast,
		}
		switch v := e.Item.(type) {
		case *solution.Folder:
			item.Folder = true
		case *solution.ProjectItem:
			item.Detail = v.Project().DisplayID()
		}
		items = append(items, item)
	}
	return items
}

// FormatSolution renders the solution tree, its flags and counts in a box.
func FormatSolution(snap *service.SolutionSnapshot) string {
	var b strings.Builder

	b.WriteString(StyleFolder.Render(snap.RootPath) + "\n")
	if len(snap.Entries) == 0 {
		b.WriteString(Dim("(empty)") + "\n")
	} else {
		b.WriteString(RenderTree(SolutionTreeItems(snap.Entries)))
	}

	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		FlagPill("dirty", snap.Dirty),
		FlagPill("has items", snap.HasItems),
		FlagPill("scc bound", snap.SourceControlBound),
	}, "  ") + "\n")
	b.WriteString(Dim(FormatStats(snap.Stats)))

	return RenderBox("Solution", b.String())
}

// FormatStats renders the project and folder counts on one line.
func FormatStats(s solution.Stats) string {
	return fmt.Sprintf("%d explicit · %d referenced · %d folders", s.Explicit, s.Referenced, s.Folders)
}

// RenderPlainTree writes the solution as an unstyled tree followed by the
// flags, one per line. Folder names end with a slash and project rows carry
// the short ID, so gtree never merges two siblings into one row.
func RenderPlainTree(w io.Writer, snap *service.SolutionSnapshot) error {
	root := gtree.NewRoot(snap.RootPath)

	// nodes[d] is the most recent node at depth d; entries arrive pre-order.
	nodes := []*gtree.Node{root}
	for _, e := range snap.Entries {
		var text string
		switch v := e.Item.(type) {
		case *solution.Folder:
			text = v.Name() + "/"
		case *solution.ProjectItem:
			text = fmt.Sprintf("%s (%s)", v.Name(), v.Project().DisplayID())
		}
		nodes = append(nodes[:e.Depth], nodes[e.Depth-1].Add(text))
	}

	if err := gtree.OutputFromRoot(w, root); err != nil {
		return fmt.Errorf("rendering tree: %w", err)
	}

	_, err := fmt.Fprintf(w, "dirty: %s\nhas items: %s\nscc bound: %s\n%s\n",
		yesNo(snap.Dirty), yesNo(snap.HasItems), yesNo(snap.SourceControlBound), FormatStats(snap.Stats))
	return err
}
