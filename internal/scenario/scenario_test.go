package scenario

import (
	"strings"
	"testing"
	"time"

	"github.com/mj1618/inspector-gadget/internal/platform"
)

const sampleScenario = `
surfaces:
  - title: Main
    nodes:
      - name: toolbar
        role: toolbar
        elements:
          - name: save
            label: Save
            desc: save button
      - name: status
        kind: label
        desc: status text
        text: Ready
  - title: Settings
    active: false
steps:
  - set-label: save
    value: Save All
  - set-text: status
    value: Saving
  - add-element: toolbar
    label: Undo
  - remove-node: toolbar
  - activate-surface: Settings
  - log-text: "side note"
`

func TestParseAndBuild(t *testing.T) {
	sc, err := Parse([]byte(sampleScenario))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(sc.Surfaces) != 2 || len(sc.Steps) != 6 {
		t.Fatalf("unexpected shape: %d surfaces, %d steps", len(sc.Surfaces), len(sc.Steps))
	}

	w, err := sc.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, ok := w.Surfaces["Main"]; !ok {
		t.Error("missing surface Main")
	}
	if _, ok := w.Nodes["toolbar"]; !ok {
		t.Error("missing node toolbar")
	}
	el, ok := w.Elements["save"]
	if !ok || el.Label() != "Save" {
		t.Errorf("element save missing or mislabeled: %v", ok)
	}
	lbl, ok := w.Labels["status"]
	if !ok || lbl.Text() != "Ready" {
		t.Errorf("label status missing or without initial text")
	}
	// Initial text goes through the entry point, so it is hookable.
	if lbl.Element().Label() != "Ready" {
		t.Errorf("initial text must mirror into the element, got %q", lbl.Element().Label())
	}

	active := w.App.ActiveSurfaces()
	if len(active) != 1 || active[0].Title() != "Main" {
		t.Errorf("expected only Main active, got %v", titles(active))
	}
}

func titles(surfaces []platform.Surface) []string {
	out := make([]string, 0, len(surfaces))
	for _, s := range surfaces {
		out = append(out, s.Title())
	}
	return out
}

func TestRunAppliesSteps(t *testing.T) {
	sc, err := Parse([]byte(sampleScenario))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	w, err := sc.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	var logged []string
	if err := w.Run(sc.Steps, func(s string) { logged = append(logged, s) }); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if w.Elements["save"].Label() != "Save All" {
		t.Errorf("set-label not applied, got %q", w.Elements["save"].Label())
	}
	if w.Labels["status"].Text() != "Saving" {
		t.Errorf("set-text not applied, got %q", w.Labels["status"].Text())
	}
	if len(w.App.ActiveSurfaces()) != 2 {
		t.Errorf("activate-surface not applied, %d active", len(w.App.ActiveSurfaces()))
	}
	if len(logged) != 1 || logged[0] != "side note" {
		t.Errorf("log-text not delivered, got %v", logged)
	}
	// remove-node removed the toolbar subtree
	for _, child := range w.Surfaces["Main"].Root().Children() {
		if child.Role() == "toolbar" {
			t.Error("toolbar should have been removed")
		}
	}
}

func TestParseRejectsEmptyScenario(t *testing.T) {
	if _, err := Parse([]byte("steps: []\n")); err == nil {
		t.Error("expected error for scenario without surfaces")
	}
	if _, err := Parse([]byte("surfaces: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestBuildRejectsDuplicateNames(t *testing.T) {
	src := `
surfaces:
  - title: Main
    nodes:
      - name: a
      - name: a
`
	sc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := sc.Build(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate-name error, got %v", err)
	}
}

func TestBuildRejectsLabelWithChildren(t *testing.T) {
	src := `
surfaces:
  - title: Main
    nodes:
      - name: bad
        kind: label
        children:
          - name: inner
`
	sc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := sc.Build(); err == nil {
		t.Error("expected error for label with children")
	}
}

func TestRunUnknownTargets(t *testing.T) {
	sc, err := Parse([]byte("surfaces:\n  - title: Main\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	w, err := sc.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	cases := []Step{
		{SetText: "missing", Value: "x"},
		{SetLabel: "missing", Value: "x"},
		{AddElement: "missing"},
		{RemoveNode: "missing"},
		{ActivateSurface: "missing"},
		{}, // no action
	}
	for i, step := range cases {
		if err := w.Run([]Step{step}, nil); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}

	note := "note"
	if err := w.Run([]Step{{LogText: &note}}, nil); err == nil {
		t.Error("log-text with nil callback must fail")
	}
}

func TestDurationParsing(t *testing.T) {
	src := `
surfaces:
  - title: Main
steps:
  - sleep: 15ms
`
	sc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if time.Duration(sc.Steps[0].Sleep) != 15*time.Millisecond {
		t.Errorf("expected 15ms, got %v", time.Duration(sc.Steps[0].Sleep))
	}

	bad := `
surfaces:
  - title: Main
steps:
  - sleep: soon
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("expected error for unparsable duration")
	}
}
