// Package events is a small in-process fan-out of typed engine events.
// The search engine publishes query activity and the ingester publishes
// batch results; the SSE endpoint streams them to admin listeners.
package events

import (
	"encoding/json"
	"time"
)

// Event types published by this engine.
const (
	TypeSearch       = "search"
	TypeJobsIngested = "jobs_ingested"
	TypePing         = "ping"
)

// envelopeVersion bumps when the wire shape of Event changes.
const envelopeVersion = 1

// Event is the envelope subscribers receive. Data holds the pre-marshaled
// type-specific payload so subscribers never share mutable state.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// New builds an event of the given type. A nil payload is fine.
func New(typ string, data any) Event {
	e := Event{Type: typ, Version: envelopeVersion, At: time.Now().UTC()}
	if data != nil {
		b, _ := json.Marshal(data)
		e.Data = b
	}
	return e
}

// Encode renders the wire form streamed to SSE clients.
func (e Event) Encode() string {
	b, _ := json.Marshal(e)
	return string(b)
}
