// Package platform defines the interface boundary between the observation
// engine and a host application's UI tree. Hosts implement these interfaces;
// the engine never depends on a concrete view layer.
package platform

// Element is a semantic element exposed for assistive consumption. A node may
// declare zero or more of them, including synthetic sub-elements that have no
// structural presence of their own (e.g. merged labels for compound controls).
type Element interface {
	// ID is a stable, content-independent handle identifying this live
	// element instance. Hosts assign it at creation and never reuse it.
	ID() uint64

	// Label is the semantic label. An empty label means "no information".
	Label() string

	// Description is a short human-readable identification of the element,
	// used in diagnostic output.
	Description() string
}

// Node is a structural node in the host UI tree.
type Node interface {
	// Role names the node kind (e.g. "group", "label", "btn").
	Role() string

	// Children returns the structural child nodes.
	Children() []Node

	// Elements returns the node's declared accessibility elements. Nodes
	// with none are still recursed into by tree walks.
	Elements() []Element
}

// Surface is a top-level surface (window) in the host application.
type Surface interface {
	Node

	// Title is the surface's title.
	Title() string
}

// TreeSource exposes the host's currently active top-level surfaces. The
// engine walks only active surfaces; background surfaces are not observed.
type TreeSource interface {
	ActiveSurfaces() []Surface
}

// TextSet describes one invocation of the host's text-set entry point,
// delivered to hooks before the real mutation is performed.
type TextSet struct {
	// Element identifies the text control being mutated.
	Element Element

	// Previous is the control's current text, or nil if this is the
	// first-ever set on a fresh control.
	Previous *string

	// Text is the incoming value. The host applies it after hooks return.
	Text string
}

// TextHooker is implemented by hosts that expose their text-set entry point
// for decoration. AddTextHook registers a callback invoked on every text-set
// call, before the mutation takes effect; the returned function removes the
// hook. Hosts that do not implement this interface cannot be intercepted and
// the engine degrades to poll-only operation.
type TextHooker interface {
	AddTextHook(func(TextSet)) (remove func())
}

// RemovalSignaler is implemented by hosts that announce element removal, so
// stale registry entries can be evicted instead of leaking for the process
// lifetime.
type RemovalSignaler interface {
	OnElementRemoved(func(id uint64)) (cancel func())
}

// SurfaceSignaler is implemented by hosts that announce surface activation.
// The engine uses it to retry overlay attachment when no surface was active
// at start.
type SurfaceSignaler interface {
	OnSurfaceActivated(func(Surface)) (cancel func())
}
