package sink

import "github.com/mj1618/inspector-gadget/internal/model"

// Multi fans records out to several sinks. Send delivers to every sink and
// returns the first error encountered; one failing backend does not starve
// the others.
type Multi struct {
	sinks []Sink
}

// NewMulti creates a fan-out sink.
func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Send(rec model.ChangeRecord) error {
	var first error
	for _, s := range m.sinks {
		if err := s.Send(rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *Multi) Diag(msg string) {
	for _, s := range m.sinks {
		s.Diag(msg)
	}
}

func (m *Multi) Close() error {
	var first error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
