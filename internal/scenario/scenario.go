// Package scenario loads YAML-defined host trees and timed mutation scripts.
// Scenarios drive the watch and snapshot commands, the MCP server's host
// tree, and tests: they describe surfaces, nodes, accessibility elements, and
// label controls, plus a sequence of steps mutating them over time.
package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/inspector-gadget/internal/platform/memhost"
)

// Duration wraps time.Duration with YAML parsing of strings like "250ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Scenario is a host tree definition plus an optional mutation script.
type Scenario struct {
	Surfaces []SurfaceDef `yaml:"surfaces"`
	Steps    []Step       `yaml:"steps,omitempty"`
}

// SurfaceDef declares one top-level surface.
type SurfaceDef struct {
	Title  string    `yaml:"title"`
	Active *bool     `yaml:"active,omitempty"` // default true
	Nodes  []NodeDef `yaml:"nodes,omitempty"`
}

// NodeDef declares a structural node. kind "label" makes the node a Label
// text control; any initial text is applied through its SetText entry point.
type NodeDef struct {
	Name     string       `yaml:"name,omitempty"`
	Role     string       `yaml:"role,omitempty"` // default "group"
	Kind     string       `yaml:"kind,omitempty"` // "" or "label"
	Desc     string       `yaml:"desc,omitempty"`
	Text     *string      `yaml:"text,omitempty"`
	Elements []ElementDef `yaml:"elements,omitempty"`
	Children []NodeDef    `yaml:"children,omitempty"`
}

// ElementDef declares an accessibility element on a node.
type ElementDef struct {
	Name  string `yaml:"name,omitempty"`
	Label string `yaml:"label,omitempty"`
	Desc  string `yaml:"desc,omitempty"`
}

// Step is one scripted mutation. Exactly one action field must be set;
// value/label/desc parameterize it.
type Step struct {
	Sleep           Duration `yaml:"sleep,omitempty"`
	SetText         string   `yaml:"set-text,omitempty"`
	SetLabel        string   `yaml:"set-label,omitempty"`
	AddElement      string   `yaml:"add-element,omitempty"`
	RemoveNode      string   `yaml:"remove-node,omitempty"`
	ActivateSurface string   `yaml:"activate-surface,omitempty"`
	LogText         *string  `yaml:"log-text,omitempty"`

	Value string `yaml:"value,omitempty"`
	Label string `yaml:"label,omitempty"`
	Desc  string `yaml:"desc,omitempty"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Surfaces) == 0 {
		return nil, fmt.Errorf("scenario declares no surfaces")
	}
	return &sc, nil
}

// World is a built scenario: the live host app plus name lookups for every
// named surface, node, label control, and element.
type World struct {
	App      *memhost.App
	Surfaces map[string]*memhost.Surface
	Nodes    map[string]*memhost.Node
	Labels   map[string]*memhost.Label
	Elements map[string]*memhost.Element
}

// Build constructs the in-memory host application the scenario describes.
// Names must be unique within their kind.
func (sc *Scenario) Build() (*World, error) {
	w := &World{
		App:      memhost.New(),
		Surfaces: make(map[string]*memhost.Surface),
		Nodes:    make(map[string]*memhost.Node),
		Labels:   make(map[string]*memhost.Label),
		Elements: make(map[string]*memhost.Element),
	}
	for _, sd := range sc.Surfaces {
		active := true
		if sd.Active != nil {
			active = *sd.Active
		}
		s := w.App.AddSurface(sd.Title, active)
		if _, dup := w.Surfaces[sd.Title]; dup {
			return nil, fmt.Errorf("duplicate surface title %q", sd.Title)
		}
		w.Surfaces[sd.Title] = s
		for _, nd := range sd.Nodes {
			if err := w.buildNode(s.Root(), nd); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}

func (w *World) buildNode(parent *memhost.Node, nd NodeDef) error {
	if nd.Kind == "label" {
		lbl := parent.AddLabel(nd.Desc)
		if nd.Name != "" {
			if _, dup := w.Labels[nd.Name]; dup {
				return fmt.Errorf("duplicate label name %q", nd.Name)
			}
			w.Labels[nd.Name] = lbl
			w.Nodes[nd.Name] = lbl.Node()
		}
		if nd.Text != nil {
			lbl.SetText(*nd.Text)
		}
		if len(nd.Elements) > 0 || len(nd.Children) > 0 {
			return fmt.Errorf("label %q cannot declare elements or children", nd.Name)
		}
		return nil
	}

	role := nd.Role
	if role == "" {
		role = "group"
	}
	node := parent.AddChild(role)
	if nd.Name != "" {
		if _, dup := w.Nodes[nd.Name]; dup {
			return fmt.Errorf("duplicate node name %q", nd.Name)
		}
		w.Nodes[nd.Name] = node
	}
	for _, ed := range nd.Elements {
		el := node.AddElement(ed.Label, ed.Desc)
		if ed.Name != "" {
			if _, dup := w.Elements[ed.Name]; dup {
				return fmt.Errorf("duplicate element name %q", ed.Name)
			}
			w.Elements[ed.Name] = el
		}
	}
	for _, child := range nd.Children {
		if err := w.buildNode(node, child); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the steps in order. logText receives log-text step values
// (wire it to Engine.LogText); it may be nil, in which case log-text steps
// fail.
func (w *World) Run(steps []Step, logText func(string)) error {
	for i, step := range steps {
		if err := w.apply(step, logText); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (w *World) apply(step Step, logText func(string)) error {
	switch {
	case step.Sleep > 0:
		time.Sleep(time.Duration(step.Sleep))
	case step.SetText != "":
		lbl, ok := w.Labels[step.SetText]
		if !ok {
			return fmt.Errorf("unknown label %q", step.SetText)
		}
		lbl.SetText(step.Value)
	case step.SetLabel != "":
		el, ok := w.Elements[step.SetLabel]
		if !ok {
			return fmt.Errorf("unknown element %q", step.SetLabel)
		}
		el.SetLabel(step.Value)
	case step.AddElement != "":
		node, ok := w.Nodes[step.AddElement]
		if !ok {
			return fmt.Errorf("unknown node %q", step.AddElement)
		}
		node.AddElement(step.Label, step.Desc)
	case step.RemoveNode != "":
		node, ok := w.Nodes[step.RemoveNode]
		if !ok {
			return fmt.Errorf("unknown node %q", step.RemoveNode)
		}
		node.Remove()
	case step.ActivateSurface != "":
		s, ok := w.Surfaces[step.ActivateSurface]
		if !ok {
			return fmt.Errorf("unknown surface %q", step.ActivateSurface)
		}
		w.App.ActivateSurface(s)
	case step.LogText != nil:
		if logText == nil {
			return fmt.Errorf("log-text step with no engine attached")
		}
		logText(*step.LogText)
	default:
		return fmt.Errorf("step has no action")
	}
	return nil
}
