package sink

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mj1618/inspector-gadget/internal/model"
)

func strPtr(s string) *string { return &s }

func TestLogSink_FirstSet(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(&buf)
	rec := model.NewChangeRecord(1, nil, "Hello", model.SourceIntercept, "greeting")
	if err := s.Send(rec); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	want := "[InspectorGadget] Label set: 'Hello'\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLogSink_Changed(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(&buf)
	rec := model.NewChangeRecord(1, strPtr("Hello"), "Goodbye", model.SourceIntercept, "greeting")
	if err := s.Send(rec); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	want := "[InspectorGadget] Label text changed: 'Hello' -> 'Goodbye'\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLogSink_Poll(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(&buf)
	rec := model.NewChangeRecord(3, strPtr("A"), "B", model.SourcePoll, "save button")
	if err := s.Send(rec); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	want := "[InspectorGadget] Accessibility text changed: 'B' on element: save button\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLogSink_ManualUsesSetFormats(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(&buf)
	s.Send(model.NewChangeRecord(0, nil, "Hi", model.SourceManual, "side channel"))
	s.Send(model.NewChangeRecord(0, strPtr("Hi"), "Bye", model.SourceManual, "side channel"))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "[InspectorGadget] Label set: 'Hi'" {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "[InspectorGadget] Label text changed: 'Hi' -> 'Bye'" {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestLogSink_Diag(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(&buf)
	s.Diag("interception unavailable")
	want := "[InspectorGadget] interception unavailable\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestJSONLSink_Change(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONLSink(&buf)
	rec := model.NewChangeRecord(5, strPtr("A"), "B", model.SourcePoll, "btn")
	if err := s.Send(rec); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["type"] != "change" {
		t.Errorf("expected type change, got %v", decoded["type"])
	}
	if decoded["new"] != "B" || decoded["prev"] != "A" {
		t.Errorf("unexpected payload: %v", decoded)
	}
}

func TestRing_DrainClears(t *testing.T) {
	r := NewRing(10)
	r.Send(model.NewChangeRecord(1, nil, "A", model.SourcePoll, ""))
	r.Send(model.NewChangeRecord(2, nil, "B", model.SourcePoll, ""))
	recs := r.Drain()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if r.Len() != 0 {
		t.Errorf("expected empty ring after drain, got %d", r.Len())
	}
}

func TestRing_DropsOldest(t *testing.T) {
	r := NewRing(2)
	r.Send(model.NewChangeRecord(1, nil, "A", model.SourcePoll, ""))
	r.Send(model.NewChangeRecord(2, nil, "B", model.SourcePoll, ""))
	r.Send(model.NewChangeRecord(3, nil, "C", model.SourcePoll, ""))
	recs := r.Drain()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].New != "B" || recs[1].New != "C" {
		t.Errorf("expected oldest dropped, got %v", recs)
	}
}

type failSink struct{ CallbackSink }

func (failSink) Send(model.ChangeRecord) error { return errors.New("boom") }

func TestMulti_DeliversToAll(t *testing.T) {
	var got []model.ChangeRecord
	cb := &CallbackSink{OnRecord: func(rec model.ChangeRecord) { got = append(got, rec) }}
	m := NewMulti(&failSink{}, cb)
	err := m.Send(model.NewChangeRecord(1, nil, "A", model.SourceIntercept, ""))
	if err == nil {
		t.Error("expected first sink's error to propagate")
	}
	if len(got) != 1 {
		t.Errorf("expected delivery to continue past failing sink, got %d records", len(got))
	}
}
