package memhost

import (
	"testing"

	"github.com/mj1618/inspector-gadget/internal/platform"
)

func TestSetText_RunsHookBeforeMutation(t *testing.T) {
	app := New()
	s := app.AddSurface("Main", true)
	lbl := s.Root().AddLabel("greeting")

	var events []platform.TextSet
	app.AddTextHook(func(ev platform.TextSet) {
		events = append(events, ev)
	})

	lbl.SetText("Hello")
	if lbl.Text() != "Hello" {
		t.Errorf("mutation must take effect, got %q", lbl.Text())
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 hook invocation, got %d", len(events))
	}
	if events[0].Previous != nil {
		t.Errorf("first set should have nil previous, got %q", *events[0].Previous)
	}
	if events[0].Text != "Hello" {
		t.Errorf("expected Hello, got %q", events[0].Text)
	}

	lbl.SetText("Goodbye")
	if len(events) != 2 {
		t.Fatalf("expected 2 hook invocations, got %d", len(events))
	}
	if events[1].Previous == nil || *events[1].Previous != "Hello" {
		t.Errorf("expected previous Hello, got %v", events[1].Previous)
	}
}

func TestRemoveTextHook(t *testing.T) {
	app := New()
	s := app.AddSurface("Main", true)
	lbl := s.Root().AddLabel("")

	count := 0
	remove := app.AddTextHook(func(platform.TextSet) { count++ })
	lbl.SetText("a")
	remove()
	lbl.SetText("b")
	if count != 1 {
		t.Errorf("expected 1 invocation after removal, got %d", count)
	}
	if lbl.Text() != "b" {
		t.Errorf("mutation must still apply without hooks, got %q", lbl.Text())
	}
}

func TestLabelMirrorsTextIntoElement(t *testing.T) {
	app := New()
	s := app.AddSurface("Main", true)
	lbl := s.Root().AddLabel("status")

	if lbl.Element().Label() != "" {
		t.Errorf("fresh label should expose empty semantic label, got %q", lbl.Element().Label())
	}
	lbl.SetText("Ready")
	if lbl.Element().Label() != "Ready" {
		t.Errorf("expected semantic label Ready, got %q", lbl.Element().Label())
	}
}

func TestElementIDsAreDistinctAndStable(t *testing.T) {
	app := New()
	s := app.AddSurface("Main", true)
	n := s.Root().AddChild("group")
	a := n.AddElement("A", "")
	b := n.AddElement("B", "")
	if a.ID() == b.ID() {
		t.Error("distinct elements must get distinct ids")
	}
	id := a.ID()
	a.SetLabel("changed")
	if a.ID() != id {
		t.Error("identity must not change with content")
	}
}

func TestRemove_FiresElementRemovedForSubtree(t *testing.T) {
	app := New()
	s := app.AddSurface("Main", true)
	group := s.Root().AddChild("group")
	inner := group.AddChild("group")
	el1 := group.AddElement("A", "")
	el2 := inner.AddElement("B", "")
	keep := s.Root().AddChild("group").AddElement("C", "")

	var removed []uint64
	app.OnElementRemoved(func(id uint64) { removed = append(removed, id) })

	group.Remove()

	if len(removed) != 2 {
		t.Fatalf("expected 2 removals, got %d", len(removed))
	}
	seen := map[uint64]bool{removed[0]: true, removed[1]: true}
	if !seen[el1.ID()] || !seen[el2.ID()] {
		t.Errorf("expected removals for %d and %d, got %v", el1.ID(), el2.ID(), removed)
	}
	if seen[keep.ID()] {
		t.Error("sibling element must not be reported removed")
	}
	if len(s.Root().Children()) != 1 {
		t.Errorf("expected 1 remaining child, got %d", len(s.Root().Children()))
	}
}

func TestActiveSurfaces(t *testing.T) {
	app := New()
	app.AddSurface("Main", true)
	background := app.AddSurface("Settings", false)

	active := app.ActiveSurfaces()
	if len(active) != 1 {
		t.Fatalf("expected 1 active surface, got %d", len(active))
	}
	if active[0].Title() != "Main" {
		t.Errorf("expected Main, got %q", active[0].Title())
	}

	var activated []string
	app.OnSurfaceActivated(func(s platform.Surface) { activated = append(activated, s.Title()) })
	app.ActivateSurface(background)
	app.ActivateSurface(background) // no-op

	if len(app.ActiveSurfaces()) != 2 {
		t.Errorf("expected 2 active surfaces, got %d", len(app.ActiveSurfaces()))
	}
	if len(activated) != 1 || activated[0] != "Settings" {
		t.Errorf("expected one activation signal for Settings, got %v", activated)
	}
}

func TestElementDescriptionFallback(t *testing.T) {
	app := New()
	s := app.AddSurface("Main", true)
	el := s.Root().AddElement("A", "")
	if el.Description() == "" {
		t.Error("expected non-empty description fallback")
	}
	named := s.Root().AddElement("B", "save button")
	if named.Description() != "save button" {
		t.Errorf("expected explicit description, got %q", named.Description())
	}
}
