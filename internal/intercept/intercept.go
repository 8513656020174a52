// Package intercept decorates the host's text-set entry point. Every
// imperative text mutation is observed synchronously, in the same call that
// performs it: zero latency, zero missed transitions, and the mutation always
// takes visible effect because the host applies it after hooks return.
package intercept

import (
	"errors"
	"sync"

	"github.com/mj1618/inspector-gadget/internal/model"
	"github.com/mj1618/inspector-gadget/internal/platform"
	"github.com/mj1618/inspector-gadget/internal/sink"
)

// ErrNoEntryPoint is returned by Install when the tree source does not expose
// a text-set hook point. Non-fatal: the engine degrades to poll-only.
var ErrNoEntryPoint = errors.New("text-set entry point not available on this tree source")

// Interceptor emits a ChangeRecord for every text-set call whose value
// differs from the control's current one, plus every first-ever set.
type Interceptor struct {
	snk sink.Sink

	mu        sync.Mutex
	installed bool
	remove    func()
}

// New creates an interceptor reporting to snk.
func New(snk sink.Sink) *Interceptor {
	return &Interceptor{snk: snk}
}

// Install registers the interceptor's callback on the source's text-set entry
// point. Idempotent: a second Install on an already-installed interceptor is
// a no-op, so changes are never double-reported.
func (i *Interceptor) Install(src platform.TreeSource) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.installed {
		return nil
	}
	hooker, ok := src.(platform.TextHooker)
	if !ok {
		return ErrNoEntryPoint
	}
	i.remove = hooker.AddTextHook(i.observe)
	i.installed = true
	return nil
}

// Uninstall removes the callback, restoring the entry point to its
// undecorated behavior. Safe to call when not installed.
func (i *Interceptor) Uninstall() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.installed {
		return
	}
	i.remove()
	i.remove = nil
	i.installed = false
}

// Installed reports whether interception is active.
func (i *Interceptor) Installed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.installed
}

// observe runs inline with the host's text-set call, before the mutation.
// Setting a control to its current value emits nothing; a first-ever set
// always emits, with a nil previous label.
func (i *Interceptor) observe(ev platform.TextSet) {
	if ev.Previous != nil && *ev.Previous == ev.Text {
		return
	}
	rec := model.NewChangeRecord(ev.Element.ID(), ev.Previous, ev.Text,
		model.SourceIntercept, ev.Element.Description())
	_ = i.snk.Send(rec)
}
