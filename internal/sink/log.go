package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mj1618/inspector-gadget/internal/model"
)

// logPrefix tags every diagnostic line so host log output is filterable.
const logPrefix = "[InspectorGadget]"

// LogSink writes human-readable diagnostic lines to an io.Writer. This is the
// reporting channel the engine ships with by default.
type LogSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogSink creates a LogSink. If w is nil, os.Stdout is used.
func NewLogSink(w io.Writer) *LogSink {
	if w == nil {
		w = os.Stdout
	}
	return &LogSink{w: w}
}

// Send writes one line per record:
//
//	[InspectorGadget] Label set: 'new'
//	[InspectorGadget] Label text changed: 'old' -> 'new'
//	[InspectorGadget] Accessibility text changed: 'new' on element: desc
//
// Interception and manual records share the first two formats; in this design
// the side channel is just another label set.
func (s *LogSink) Send(rec model.ChangeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	switch rec.Source {
	case model.SourcePoll:
		_, err = fmt.Fprintf(s.w, "%s Accessibility text changed: '%s' on element: %s\n",
			logPrefix, rec.New, rec.Description)
	default:
		if rec.Previous == nil {
			_, err = fmt.Fprintf(s.w, "%s Label set: '%s'\n", logPrefix, rec.New)
		} else {
			_, err = fmt.Fprintf(s.w, "%s Label text changed: '%s' -> '%s'\n",
				logPrefix, *rec.Previous, rec.New)
		}
	}
	return err
}

// Diag writes a prefixed diagnostic line.
func (s *LogSink) Diag(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s %s\n", logPrefix, msg)
}

func (s *LogSink) Close() error { return nil }
