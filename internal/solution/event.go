package solution

// ChangeKind identifies a structural mutation.
type ChangeKind string

const (
	ItemAdded   ChangeKind = "added"
	ItemRemoved ChangeKind = "removed"
)

// ChangeEvent describes one insertion or removal. Parent is the folder the
// item was added to or removed from.
type ChangeEvent struct {
	Kind   ChangeKind
	Item   Item
	Parent *Folder
}

// Listener receives change events synchronously, inside the call that
// caused them. A listener may mutate the tree again.
type Listener func(ChangeEvent)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l for every subsequent change and returns a function
// that removes it.
func (t *Tree) Subscribe(l Listener) (unsubscribe func()) {
	t.nextSubID++
	id := t.nextSubID
	t.subs = append(t.subs, subscription{id: id, fn: l})
	return func() {
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

func (t *Tree) notify(ev ChangeEvent) {
	t.track(ev)
	subs := append([]subscription(nil), t.subs...)
	for _, s := range subs {
		s.fn(ev)
	}
}

// track maintains the aggregate flags. The source-control flag is only ever
// raised.
func (t *Tree) track(ev ChangeEvent) {
	t.dirty = true
	t.hasItems = t.root.Len() > 0
	if ev.Kind != ItemAdded {
		return
	}
	if pi, ok := ev.Item.(*ProjectItem); ok && pi.project.SourceControlBound {
		t.sourceControlBound = true
	}
}
