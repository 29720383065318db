package solution

import (
	"strings"

	"github.com/alexanderramin/solutionizer/internal/domain"
)

// Entry is one row of a display-order enumeration.
type Entry struct {
	Item  Item
	Path  string
	Depth int // 1 for direct children of the root
	// IsLast reports whether the item is the last child of its parent.
	IsLast bool
	// AncestorsLast holds IsLast for each enclosing folder below the root,
	// outermost first.
	AncestorsLast []bool
}

// Walk visits every item below the root depth-first in display order.
// Returning false from fn skips the item's children.
func (t *Tree) Walk(fn func(e Entry) bool) {
	walkFolder(t.root, "", 1, nil, fn)
}

func walkFolder(f *Folder, prefix string, depth int, ancestors []bool, fn func(Entry) bool) {
	children := f.Children()
	for i, it := range children {
		e := Entry{
			Item:          it,
			Path:          joinPath(prefix, it.Name()),
			Depth:         depth,
			IsLast:        i == len(children)-1,
			AncestorsLast: ancestors,
		}
		if !fn(e) {
			continue
		}
		if sub, ok := it.(*Folder); ok {
			next := append(append([]bool(nil), ancestors...), e.IsLast)
			walkFolder(sub, e.Path, depth+1, next, fn)
		}
	}
}

// Entries returns the whole tree in display order.
func (t *Tree) Entries() []Entry {
	var out []Entry
	t.Walk(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Projects returns every project in the tree in display order.
func (t *Tree) Projects() []*domain.Project {
	var out []*domain.Project
	t.Walk(func(e Entry) bool {
		if pi, ok := e.Item.(*ProjectItem); ok {
			out = append(out, pi.project)
		}
		return true
	})
	return out
}

// Find returns the item at a slash separated display path such as
// "_References/libs/Core". Names match exactly first, then ignoring case.
func (t *Tree) Find(path string) Item {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	var current Item = t.root
	for _, name := range strings.Split(path, "/") {
		folder, ok := current.(*Folder)
		if !ok {
			return nil
		}
		next := childNamed(folder, name)
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

func childNamed(f *Folder, name string) Item {
	children := f.Children()
	for _, it := range children {
		if it.Name() == name {
			return it
		}
	}
	folded := foldName(name)
	for _, it := range children {
		if foldName(it.Name()) == folded {
			return it
		}
	}
	return nil
}

// PathOf returns the display path of item below the root, or "" for the
// root and for detached items.
func PathOf(item Item) string {
	var names []string
	for it := item; it != nil && it.Parent() != nil; it = it.Parent() {
		names = append(names, it.Name())
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// Stats counts explicitly added and reference-expanded projects.
type Stats struct {
	Explicit   int
	Referenced int
	Folders    int
}

func (t *Tree) Stats() Stats {
	var s Stats
	for _, it := range t.root.items {
		if _, ok := it.(*ProjectItem); ok {
			s.Explicit++
		}
	}
	t.Walk(func(e Entry) bool {
		switch e.Item.(type) {
		case *Folder:
			s.Folders++
		case *ProjectItem:
			if e.Depth > 1 {
				s.Referenced++
			}
		}
		return true
	})
	return s
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
