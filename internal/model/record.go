package model

import "time"

// Source identifies which observer produced a ChangeRecord.
type Source string

const (
	// SourceIntercept marks records emitted synchronously by the mutation
	// interceptor, inline with the host's text-set call.
	SourceIntercept Source = "intercept"
	// SourcePoll marks records emitted by the periodic accessibility walk.
	SourcePoll Source = "poll"
	// SourceManual marks records pushed through the side-channel LogText API.
	SourceManual Source = "manual"
)

// ChangeRecord is a single detected text change. It is ephemeral: emitted to
// the sink and never persisted. Previous is nil for a first-ever observation.
type ChangeRecord struct {
	ElementID   uint64  `json:"el"             yaml:"el"`
	Previous    *string `json:"prev,omitempty" yaml:"prev,omitempty"`
	New         string  `json:"new"            yaml:"new"`
	Source      Source  `json:"source"         yaml:"source"`
	Description string  `json:"desc,omitempty" yaml:"desc,omitempty"`
	TS          int64   `json:"ts"             yaml:"ts"`
}

// NewChangeRecord builds a record stamped with the current time.
func NewChangeRecord(id uint64, prev *string, newLabel string, src Source, desc string) ChangeRecord {
	return ChangeRecord{
		ElementID:   id,
		Previous:    prev,
		New:         newLabel,
		Source:      src,
		Description: desc,
		TS:          time.Now().Unix(),
	}
}

// FirstSet reports whether this record is a first-ever observation.
func (r ChangeRecord) FirstSet() bool {
	return r.Previous == nil
}
