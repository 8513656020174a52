package sink

import (
	"sync"

	"github.com/mj1618/inspector-gadget/internal/model"
)

// Ring buffers the most recent records in memory, dropping the oldest when
// full. The MCP changes tool drains it; nothing is persisted.
type Ring struct {
	mu   sync.Mutex
	recs []model.ChangeRecord
	cap  int
}

// NewRing creates a ring holding at most capacity records. A capacity of 0
// or less defaults to 256.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 256
	}
	return &Ring{cap: capacity}
}

func (r *Ring) Send(rec model.ChangeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, rec)
	if len(r.recs) > r.cap {
		r.recs = r.recs[len(r.recs)-r.cap:]
	}
	return nil
}

func (r *Ring) Diag(string) {}

func (r *Ring) Close() error { return nil }

// Drain returns the buffered records and clears the buffer.
func (r *Ring) Drain() []model.ChangeRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.recs
	r.recs = nil
	return out
}

// Len returns the number of buffered records.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recs)
}
