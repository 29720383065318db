// Package solution builds the folder tree of a solution from a set of
// projects and their transitive references.
//
// A Tree is not safe for concurrent use. Change listeners run synchronously
// on the goroutine that mutates the tree.
package solution

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/solutionizer/internal/domain"
)

// Resolver looks up a project by the identifier used in project references.
type Resolver interface {
	Resolve(id string) (*domain.Project, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(id string) (*domain.Project, bool)

func (f ResolverFunc) Resolve(id string) (*domain.Project, bool) { return f(id) }

// Settings controls reference expansion on AddProject.
type Settings struct {
	FollowReferences bool
	ReferenceDepth   int
}

// DefaultSettings follows references two levels below each added project.
func DefaultSettings() Settings {
	return Settings{FollowReferences: true, ReferenceDepth: 2}
}

// Tree is a solution under construction: a root folder, the filesystem path
// that referenced projects are placed relative to, and derived flags.
type Tree struct {
	root     *Folder
	rootPath string
	resolver Resolver
	settings Settings
	logger   *slog.Logger

	dirty              bool
	hasItems           bool
	sourceControlBound bool

	subs      []subscription
	nextSubID int
}

// Option configures a Tree.
type Option func(*Tree)

// WithSettings overrides DefaultSettings.
func WithSettings(s Settings) Option {
	return func(t *Tree) { t.settings = s }
}

// WithLogger sets the logger used for skipped references and placements.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates an empty tree. A nil resolver resolves nothing.
func New(rootPath string, resolver Resolver, opts ...Option) *Tree {
	if resolver == nil {
		resolver = ResolverFunc(func(string) (*domain.Project, bool) { return nil, false })
	}
	t := &Tree{
		rootPath: rootPath,
		resolver: resolver,
		settings: DefaultSettings(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	t.root = &Folder{tree: t}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tree) Root() *Folder            { return t.root }
func (t *Tree) RootPath() string         { return t.rootPath }
func (t *Tree) Settings() Settings       { return t.settings }
func (t *Tree) SetSettings(s Settings)   { t.settings = s }
func (t *Tree) Dirty() bool              { return t.dirty }
func (t *Tree) HasItems() bool           { return t.hasItems }
func (t *Tree) SourceControlBound() bool { return t.sourceControlBound }

// AddProject adds p directly under the root. Adding a project that is
// already a root item is a no-op. A copy previously placed by reference
// expansion is dropped, so the explicit add wins. With FollowReferences set,
// p's references are then expanded up to ReferenceDepth further levels.
func (t *Tree) AddProject(p *domain.Project) {
	if p == nil {
		return
	}
	if p.SourceControlBound {
		t.sourceControlBound = true
	}
	if t.root.HasProject(p.ID) {
		return
	}

	item := newProjectItem(p)
	t.root.add(item)
	if n := t.removeProject(t.root, p.ID, item); n > 0 {
		t.logger.Debug("promoted referenced project", "project", p.Name, "removed", n)
	}

	if t.settings.FollowReferences && t.settings.ReferenceDepth >= 0 {
		t.expandReferences(p, t.settings.ReferenceDepth)
	}
}

// RemoveItem detaches item from every folder that directly contains it.
// Removing an item that is not in the tree has no effect.
func (t *Tree) RemoveItem(item Item) {
	if item == nil {
		return
	}
	t.removeItem(t.root, item)
}

func (t *Tree) removeItem(f *Folder, item Item) int {
	removed := 0
	if f.remove(item) {
		removed++
	}
	for _, sub := range f.subfolders() {
		removed += t.removeItem(sub, item)
	}
	return removed
}

// removeProject removes every item bound to id below f except keep. The
// scan visits every folder even after a match.
func (t *Tree) removeProject(f *Folder, id string, keep Item) int {
	removed := 0
	for _, it := range f.Children() {
		switch v := it.(type) {
		case *ProjectItem:
			if v != keep && v.project.ID == id && f.remove(v) {
				removed++
			}
		case *Folder:
			removed += t.removeProject(v, id, keep)
		}
	}
	return removed
}

func (t *Tree) expandReferences(p *domain.Project, depth int) {
	for _, ref := range p.References {
		target, ok := t.resolver.Resolve(ref)
		if !ok || target == nil {
			t.logger.Warn("skipping unknown project reference", "project", p.Name, "reference_id", ref)
			continue
		}
		// Revisiting a project already in the tree ends a reference cycle.
		if t.root.ContainsProject(target.ID) {
			continue
		}

		folder := t.placementFolder(target.FilePath)
		if folder.HasProject(target.ID) {
			continue
		}
		folder.add(newProjectItem(target))
		t.logger.Debug("added referenced project", "project", target.Name, "folder", PathOf(folder), "depth", depth)

		if depth > 0 {
			t.expandReferences(target, depth-1)
		}
	}
}
