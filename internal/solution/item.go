package solution

import (
	"slices"

	"github.com/alexanderramin/solutionizer/internal/domain"
)

// ItemKind distinguishes the two kinds of solution items.
type ItemKind string

const (
	KindFolder  ItemKind = "folder"
	KindProject ItemKind = "project"
)

// Item is a node of a solution tree. The only implementations are *Folder
// and *ProjectItem; callers switch on the concrete type.
type Item interface {
	Name() string
	Parent() *Folder
	Kind() ItemKind
	setParent(f *Folder)
}

// Folder is a synthetic grouping node. It owns its children; the parent
// link is a lookup only.
type Folder struct {
	name   string
	parent *Folder
	items  []Item
	tree   *Tree
}

func (f *Folder) Name() string        { return f.name }
func (f *Folder) Parent() *Folder     { return f.parent }
func (f *Folder) Kind() ItemKind      { return KindFolder }
func (f *Folder) setParent(p *Folder) { f.parent = p }

// Len returns the number of direct children.
func (f *Folder) Len() int { return len(f.items) }

// Children returns the direct children in display order. The order is
// computed on every call.
func (f *Folder) Children() []Item {
	out := slices.Clone(f.items)
	sortItems(out)
	return out
}

// Subfolder returns the direct child folder with the given name, or nil.
func (f *Folder) Subfolder(name string) *Folder {
	for _, it := range f.items {
		if sub, ok := it.(*Folder); ok && sub.name == name {
			return sub
		}
	}
	return nil
}

// ContainsProject reports whether the project with the given ID appears
// anywhere below f.
func (f *Folder) ContainsProject(id string) bool {
	for _, it := range f.items {
		switch v := it.(type) {
		case *ProjectItem:
			if v.project.ID == id {
				return true
			}
		case *Folder:
			if v.ContainsProject(id) {
				return true
			}
		}
	}
	return false
}

// HasProject reports whether the project is a direct child of f.
func (f *Folder) HasProject(id string) bool {
	return f.projectItem(id) != nil
}

func (f *Folder) projectItem(id string) *ProjectItem {
	for _, it := range f.items {
		if pi, ok := it.(*ProjectItem); ok && pi.project.ID == id {
			return pi
		}
	}
	return nil
}

func (f *Folder) subfolders() []*Folder {
	var out []*Folder
	for _, it := range f.items {
		if sub, ok := it.(*Folder); ok {
			out = append(out, sub)
		}
	}
	return out
}

// add attaches it to f, detaching it from its previous parent first.
func (f *Folder) add(it Item) {
	if old := it.Parent(); old != nil {
		if old == f {
			return
		}
		old.remove(it)
	}
	f.items = append(f.items, it)
	it.setParent(f)
	f.tree.notify(ChangeEvent{Kind: ItemAdded, Item: it, Parent: f})
}

// remove detaches it when it is a direct child of f.
func (f *Folder) remove(it Item) bool {
	idx := slices.IndexFunc(f.items, func(c Item) bool { return c == it })
	if idx < 0 {
		return false
	}
	f.items = slices.Delete(f.items, idx, idx+1)
	it.setParent(nil)
	f.tree.notify(ChangeEvent{Kind: ItemRemoved, Item: it, Parent: f})
	return true
}

func (f *Folder) getOrCreateSubfolder(name string) *Folder {
	if sub := f.Subfolder(name); sub != nil {
		return sub
	}
	sub := &Folder{name: name, tree: f.tree}
	f.add(sub)
	return sub
}

// ProjectItem is a leaf bound to exactly one project.
type ProjectItem struct {
	project *domain.Project
	parent  *Folder
}

func newProjectItem(p *domain.Project) *ProjectItem {
	return &ProjectItem{project: p}
}

func (p *ProjectItem) Name() string        { return p.project.Name }
func (p *ProjectItem) Parent() *Folder     { return p.parent }
func (p *ProjectItem) Kind() ItemKind      { return KindProject }
func (p *ProjectItem) setParent(f *Folder) { p.parent = f }

// Project returns the bound project record.
func (p *ProjectItem) Project() *domain.Project { return p.project }
