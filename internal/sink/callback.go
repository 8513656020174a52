package sink

import "github.com/mj1618/inspector-gadget/internal/model"

// CallbackSink delivers records to in-process functions. Either callback may
// be nil. Used by tests and by hosts embedding the engine directly.
type CallbackSink struct {
	OnRecord func(model.ChangeRecord)
	OnDiag   func(string)
}

func (s *CallbackSink) Send(rec model.ChangeRecord) error {
	if s.OnRecord != nil {
		s.OnRecord(rec)
	}
	return nil
}

func (s *CallbackSink) Diag(msg string) {
	if s.OnDiag != nil {
		s.OnDiag(msg)
	}
}

func (s *CallbackSink) Close() error { return nil }
