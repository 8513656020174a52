// Package overlay implements the side-channel surface: an out-of-band
// reporting path for UI layers whose text controls are not instances of the
// intercepted type. It holds the last value pushed through the manual report
// API, observable for testing, and can render that value as a badge image.
package overlay

import (
	"errors"
	"sync"

	"github.com/mj1618/inspector-gadget/internal/platform"
)

// ErrNoSurface is returned by Attach when the host has no active surface to
// attach to yet. The engine logs it and retries on the next surface
// activation; it is never fatal.
var ErrNoSurface = errors.New("no active host surface to attach the overlay to")

// Overlay is the invisible side-channel surface. Values pushed into it are
// held regardless of attachment state, so a late attach still shows the most
// recent report.
type Overlay struct {
	mu       sync.Mutex
	value    string
	hasValue bool
	host     platform.Surface
}

// New creates a detached overlay with no held value.
func New() *Overlay {
	return &Overlay{}
}

// Attach binds the overlay to the first active surface of the source.
// Returns ErrNoSurface when none is active.
func (o *Overlay) Attach(src platform.TreeSource) error {
	surfaces := src.ActiveSurfaces()
	if len(surfaces) == 0 {
		return ErrNoSurface
	}
	o.AttachTo(surfaces[0])
	return nil
}

// AttachTo binds the overlay to a specific surface. Attaching while already
// attached is a no-op; the original host is kept.
func (o *Overlay) AttachTo(s platform.Surface) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.host != nil {
		return
	}
	o.host = s
}

// Detach unbinds the overlay from its host surface. The held value survives.
func (o *Overlay) Detach() {
	o.mu.Lock()
	o.host = nil
	o.mu.Unlock()
}

// Attached reports whether the overlay is bound to a host surface.
func (o *Overlay) Attached() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.host != nil
}

// SetValue stores a pushed value and returns the previously held one, or nil
// if this is the first push.
func (o *Overlay) SetValue(v string) (prev *string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.hasValue {
		p := o.value
		prev = &p
	}
	o.value = v
	o.hasValue = true
	return prev
}

// Value returns the currently held value and whether one has been pushed.
func (o *Overlay) Value() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value, o.hasValue
}
