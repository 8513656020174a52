// Package sink defines where detected text changes go. Implementations
// deliver ChangeRecords to different backends: human-readable log lines,
// JSONL streams, in-process callbacks, a recent-changes ring, or a fan-out
// across several of these.
package sink

import "github.com/mj1618/inspector-gadget/internal/model"

// Sink consumes ChangeRecords and diagnostic messages. Send must not block
// indefinitely: the interceptor calls it inline with host text-set calls.
type Sink interface {
	// Send delivers one detected change.
	Send(rec model.ChangeRecord) error

	// Diag delivers a diagnostic message (installation failures, missing
	// surfaces). Best-effort; failures to log a diagnostic are swallowed.
	Diag(msg string)

	// Close releases any resources held by the sink.
	Close() error
}
