package sink

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/mj1618/inspector-gadget/internal/model"
)

// JSONLSink writes one JSON object per line: change records as
// {"type":"change",...} and diagnostics as {"type":"diag",...}.
type JSONLSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLSink creates a JSONLSink. If w is nil, os.Stdout is used.
func NewJSONLSink(w io.Writer) *JSONLSink {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLSink{enc: enc}
}

type changeEnvelope struct {
	Type string `json:"type"`
	model.ChangeRecord
}

type diagEnvelope struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

func (s *JSONLSink) Send(rec model.ChangeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(changeEnvelope{Type: "change", ChangeRecord: rec})
}

func (s *JSONLSink) Diag(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(diagEnvelope{Type: "diag", Msg: msg})
}

func (s *JSONLSink) Close() error { return nil }
