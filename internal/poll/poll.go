// Package poll implements the periodic accessibility walk: a recurring tick
// that visits every node of every active surface, diffs each non-empty
// semantic label against the registry, and reports differences. It catches
// the declarative-layer writes that never pass through the interceptor.
package poll

import (
	"sync"
	"time"

	"github.com/mj1618/inspector-gadget/internal/model"
	"github.com/mj1618/inspector-gadget/internal/platform"
	"github.com/mj1618/inspector-gadget/internal/registry"
	"github.com/mj1618/inspector-gadget/internal/sink"
)

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Poller walks the active surface forest on a fixed interval. Ticks run on a
// single goroutine, one at a time, to completion; the only ordering guarantee
// across records is per-element chronological order.
type Poller struct {
	src      platform.TreeSource
	reg      *registry.Registry
	snk      sink.Sink
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// New creates a poller. A non-positive interval falls back to DefaultInterval.
func New(src platform.TreeSource, reg *registry.Registry, snk sink.Sink, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{src: src, reg: reg, snk: snk, interval: interval}
}

// Start schedules the repeating tick. Idempotent while running.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.running = true
	go p.run(p.stop, p.done)
}

// Stop cancels the schedule and waits for an in-flight tick to finish. Safe
// to call when not running.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	stop, done := p.stop, p.done
	p.running = false
	p.mu.Unlock()

	close(stop)
	<-done
}

func (p *Poller) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Tick performs one full walk of every active surface. Exported so tests and
// deterministic drivers can poll without a timer.
func (p *Poller) Tick() {
	for _, s := range p.src.ActiveSurfaces() {
		platform.Walk(s, func(n platform.Node, _ string) {
			for _, el := range n.Elements() {
				p.visit(el)
			}
		})
	}
}

// visit diffs one element's semantic label against its last-known value.
// Empty labels carry no information: they never emit and never overwrite a
// previously known non-empty label.
func (p *Poller) visit(el platform.Element) {
	label := el.Label()
	if label == "" {
		return
	}
	id := el.ID()
	last, known := p.reg.Get(id)
	if known && last == label {
		return
	}
	var prev *string
	if known {
		prev = &last
	}
	rec := model.NewChangeRecord(id, prev, label, model.SourcePoll, el.Description())
	_ = p.snk.Send(rec)
	p.reg.Set(id, label)
}
