package domain

import "time"

// RequestKind names which remote call a history record describes.
type RequestKind string

const (
	RequestAsk    RequestKind = "ask"
	RequestHealth RequestKind = "health"
)

// Outcome is the terminal load state a request ended in.
type Outcome string

const (
	OutcomeReady Outcome = "ready"
	OutcomeError Outcome = "error"
)

// HistoryRecord captures one finished ask or health request.
type HistoryRecord struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	Kind       RequestKind `json:"kind"`
	BaseURL    string      `json:"base_url"`
	Question   string      `json:"question,omitempty"`
	Outcome    Outcome     `json:"outcome"`
	Detail     string      `json:"detail"`
	Source     string      `json:"source,omitempty"`
	DurationMS int64       `json:"duration_ms"`
}
