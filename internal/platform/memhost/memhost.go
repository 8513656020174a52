// Package memhost provides an in-memory host application tree implementing
// the platform interfaces. It is the reference host used by the CLI, the MCP
// server, and tests: surfaces, structural nodes, accessibility elements, and
// the Label text control whose SetText entry point is hookable.
package memhost

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mj1618/inspector-gadget/internal/platform"
)

// App is an in-memory host application. It owns the surface forest, the
// text-set hook table, and the lifecycle signal subscriptions. All tree state
// is guarded by one mutex; hooks and signals are invoked without the lock
// held so callbacks may read the tree.
type App struct {
	mu       sync.Mutex
	surfaces []*Surface

	nextElementID atomic.Uint64
	nextSubID     int

	textHooks    []hookEntry[func(platform.TextSet)]
	removedFns   []hookEntry[func(uint64)]
	activatedFns []hookEntry[func(platform.Surface)]
}

type hookEntry[F any] struct {
	id int
	fn F
}

// New creates an empty host application.
func New() *App {
	return &App{}
}

// AddSurface creates a top-level surface. Active surfaces are visible to
// ActiveSurfaces and therefore to the poller.
func (a *App) AddSurface(title string, active bool) *Surface {
	s := &Surface{title: title, active: active}
	s.node = &Node{app: a, role: "window"}
	a.mu.Lock()
	a.surfaces = append(a.surfaces, s)
	a.mu.Unlock()
	return s
}

// ActiveSurfaces returns the currently active surfaces.
func (a *App) ActiveSurfaces() []platform.Surface {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []platform.Surface
	for _, s := range a.surfaces {
		if s.active {
			out = append(out, s)
		}
	}
	return out
}

// ActivateSurface marks a surface active and fires the surface-activated
// signal. Activating an already-active surface is a no-op.
func (a *App) ActivateSurface(s *Surface) {
	a.mu.Lock()
	if s.active {
		a.mu.Unlock()
		return
	}
	s.active = true
	fns := snapshotHooks(a.activatedFns)
	a.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// AddTextHook registers a callback invoked on every Label.SetText call,
// before the mutation takes effect. The returned function removes the hook.
func (a *App) AddTextHook(h func(platform.TextSet)) (remove func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextSubID++
	id := a.nextSubID
	a.textHooks = append(a.textHooks, hookEntry[func(platform.TextSet)]{id: id, fn: h})
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.textHooks = removeHook(a.textHooks, id)
	}
}

// OnElementRemoved registers a callback fired with the ID of every element
// detached from the tree.
func (a *App) OnElementRemoved(fn func(uint64)) (cancel func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextSubID++
	id := a.nextSubID
	a.removedFns = append(a.removedFns, hookEntry[func(uint64)]{id: id, fn: fn})
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.removedFns = removeHook(a.removedFns, id)
	}
}

// OnSurfaceActivated registers a callback fired when a surface becomes active.
func (a *App) OnSurfaceActivated(fn func(platform.Surface)) (cancel func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextSubID++
	id := a.nextSubID
	a.activatedFns = append(a.activatedFns, hookEntry[func(platform.Surface)]{id: id, fn: fn})
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.activatedFns = removeHook(a.activatedFns, id)
	}
}

func removeHook[F any](entries []hookEntry[F], id int) []hookEntry[F] {
	out := entries[:0]
	for _, e := range entries {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}

func snapshotHooks[F any](entries []hookEntry[F]) []F {
	fns := make([]F, len(entries))
	for i, e := range entries {
		fns[i] = e.fn
	}
	return fns
}

// Surface is a top-level window surface.
type Surface struct {
	node   *Node
	title  string
	active bool
}

func (s *Surface) Title() string { return s.title }

func (s *Surface) Role() string { return s.node.Role() }

func (s *Surface) Children() []platform.Node { return s.node.Children() }

func (s *Surface) Elements() []platform.Element { return s.node.Elements() }

// Root returns the surface's root structural node.
func (s *Surface) Root() *Node { return s.node }

// Node is a structural node in the host tree.
type Node struct {
	app      *App
	role     string
	parent   *Node
	children []*Node
	elements []*Element
}

func (n *Node) Role() string { return n.role }

func (n *Node) Children() []platform.Node {
	n.app.mu.Lock()
	defer n.app.mu.Unlock()
	out := make([]platform.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) Elements() []platform.Element {
	n.app.mu.Lock()
	defer n.app.mu.Unlock()
	out := make([]platform.Element, len(n.elements))
	for i, e := range n.elements {
		out[i] = e
	}
	return out
}

// AddChild creates and attaches a structural child node.
func (n *Node) AddChild(role string) *Node {
	child := &Node{app: n.app, role: role, parent: n}
	n.app.mu.Lock()
	n.children = append(n.children, child)
	n.app.mu.Unlock()
	return child
}

// AddElement declares an accessibility element on this node. An empty label
// means the element carries no information yet.
func (n *Node) AddElement(label, desc string) *Element {
	el := &Element{
		app:   n.app,
		id:    n.app.nextElementID.Add(1),
		label: label,
		desc:  desc,
	}
	n.app.mu.Lock()
	n.elements = append(n.elements, el)
	n.app.mu.Unlock()
	return el
}

// Remove detaches this node (and its whole subtree) from its parent and fires
// the element-removed signal for every accessibility element it contained.
// Removing a surface root is not supported.
func (n *Node) Remove() {
	a := n.app
	a.mu.Lock()
	if n.parent != nil {
		siblings := n.parent.children[:0]
		for _, c := range n.parent.children {
			if c != n {
				siblings = append(siblings, c)
			}
		}
		n.parent.children = siblings
		n.parent = nil
	}
	var ids []uint64
	collectElementIDs(n, &ids)
	fns := snapshotHooks(a.removedFns)
	a.mu.Unlock()

	for _, id := range ids {
		for _, fn := range fns {
			fn(id)
		}
	}
}

func collectElementIDs(n *Node, ids *[]uint64) {
	for _, el := range n.elements {
		*ids = append(*ids, el.id)
	}
	for _, c := range n.children {
		collectElementIDs(c, ids)
	}
}

// Element is an accessibility element: a semantic label exposed for
// assistive consumption, possibly synthetic (no structural node of its own).
type Element struct {
	app   *App
	id    uint64
	label string
	desc  string
}

func (e *Element) ID() uint64 { return e.id }

func (e *Element) Label() string {
	e.app.mu.Lock()
	defer e.app.mu.Unlock()
	return e.label
}

func (e *Element) Description() string {
	if e.desc != "" {
		return e.desc
	}
	return fmt.Sprintf("element#%d", e.id)
}

// SetLabel updates the semantic label directly, the way a declarative UI
// layer writes to the accessibility layer. This path never runs text hooks;
// only the poller observes it.
func (e *Element) SetLabel(label string) {
	e.app.mu.Lock()
	e.label = label
	e.app.mu.Unlock()
}

// Label is the intercepted text-control type. Its SetText entry point runs
// registered text hooks with the old and new value, then performs the real
// mutation. Its displayed text is mirrored into its accessibility element's
// semantic label, as platform label controls do.
type Label struct {
	app  *App
	node *Node
	el   *Element

	text string
	set  bool
}

// AddLabel creates a Label text control under this node. The control starts
// with no text at all: the first SetText is a first-ever set.
func (n *Node) AddLabel(desc string) *Label {
	child := n.AddChild("label")
	el := child.AddElement("", desc)
	return &Label{app: n.app, node: child, el: el}
}

// SetText is the text-set entry point. Hooks run before the mutation; the
// mutation always takes effect regardless of what hooks observe.
func (l *Label) SetText(text string) {
	a := l.app
	a.mu.Lock()
	var prev *string
	if l.set {
		p := l.text
		prev = &p
	}
	hooks := snapshotHooks(a.textHooks)
	a.mu.Unlock()

	ev := platform.TextSet{Element: l.el, Previous: prev, Text: text}
	for _, h := range hooks {
		h(ev)
	}

	a.mu.Lock()
	l.text = text
	l.set = true
	l.el.label = text
	a.mu.Unlock()
}

// Text returns the control's displayed text.
func (l *Label) Text() string {
	l.app.mu.Lock()
	defer l.app.mu.Unlock()
	return l.text
}

// Node returns the control's structural node.
func (l *Label) Node() *Node { return l.node }

// Element returns the control's accessibility element.
func (l *Label) Element() *Element { return l.el }
