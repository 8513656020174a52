// Package engine ties the observers together: an explicit Engine instance
// owns its registry, interceptor, poller, overlay, and sink, so independent
// engines (one per test, per host tree) never share state. There are no
// fatal errors anywhere in the engine: every failure path degrades
// functionality and logs a diagnostic instead of reaching the host.
package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/mj1618/inspector-gadget/internal/intercept"
	"github.com/mj1618/inspector-gadget/internal/model"
	"github.com/mj1618/inspector-gadget/internal/overlay"
	"github.com/mj1618/inspector-gadget/internal/platform"
	"github.com/mj1618/inspector-gadget/internal/poll"
	"github.com/mj1618/inspector-gadget/internal/registry"
	"github.com/mj1618/inspector-gadget/internal/sink"
)

// Config controls an Engine. Zero values select the defaults: a 500ms poll
// interval and a log sink on stdout.
type Config struct {
	// Interval is the accessibility poll interval.
	Interval time.Duration

	// Sink receives every ChangeRecord and diagnostic. Compose with
	// sink.NewMulti to deliver to several backends.
	Sink sink.Sink
}

// Engine is one text-change observation engine bound to one host tree.
type Engine struct {
	src     platform.TreeSource
	snk     sink.Sink
	reg     *registry.Registry
	interc  *intercept.Interceptor
	poller  *poll.Poller
	overlay *overlay.Overlay

	mu      sync.Mutex
	started bool
	cancels []func()
}

// New creates an engine observing src. Nothing runs until Start.
func New(src platform.TreeSource, cfg Config) *Engine {
	snk := cfg.Sink
	if snk == nil {
		snk = sink.NewLogSink(nil)
	}
	reg := registry.New()
	return &Engine{
		src:     src,
		snk:     snk,
		reg:     reg,
		interc:  intercept.New(snk),
		poller:  poll.New(src, reg, snk, cfg.Interval),
		overlay: overlay.New(),
	}
}

// Start installs the interceptor (best-effort), attaches the overlay,
// subscribes to host lifecycle signals, and starts the poller. Idempotent:
// a second Start changes nothing and reports nothing twice.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true

	if err := e.interc.Install(e.src); err != nil {
		e.snk.Diag("interception unavailable: " + err.Error() + "; continuing poll-only")
	}

	if err := e.overlay.Attach(e.src); err != nil {
		if errors.Is(err, overlay.ErrNoSurface) {
			e.snk.Diag("overlay: " + err.Error() + "; retrying on next surface activation")
		}
		if ss, ok := e.src.(platform.SurfaceSignaler); ok {
			cancel := ss.OnSurfaceActivated(func(s platform.Surface) {
				e.overlay.AttachTo(s)
			})
			e.cancels = append(e.cancels, cancel)
		}
	}

	if rs, ok := e.src.(platform.RemovalSignaler); ok {
		cancel := rs.OnElementRemoved(e.reg.Evict)
		e.cancels = append(e.cancels, cancel)
	}

	e.poller.Start()
}

// Stop cancels the poll schedule, restores the text-set entry point, and
// drops all lifecycle subscriptions. Safe to call when not started.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	cancels := e.cancels
	e.cancels = nil
	e.mu.Unlock()

	e.poller.Stop()
	e.interc.Uninstall()
	for _, cancel := range cancels {
		cancel()
	}
	e.overlay.Detach()
}

// LogText pushes a label straight into the reporting pipeline, bypassing
// both the interceptor and the poller, and updates the side-channel
// overlay's held value.
func (e *Engine) LogText(text string) {
	prev := e.overlay.SetValue(text)
	rec := model.NewChangeRecord(0, prev, text, model.SourceManual, "side channel")
	_ = e.snk.Send(rec)
}

// Registry exposes the identity-keyed store, mainly for tests and tooling.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Overlay exposes the side-channel surface.
func (e *Engine) Overlay() *overlay.Overlay { return e.overlay }

// Poller exposes the accessibility poller so callers can drive ticks
// deterministically.
func (e *Engine) Poller() *poll.Poller { return e.poller }

// InterceptionActive reports whether the mutation interceptor is installed.
// False means the engine is running poll-only.
func (e *Engine) InterceptionActive() bool { return e.interc.Installed() }
