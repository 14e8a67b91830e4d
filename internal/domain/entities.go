package domain

import "strings"

// AskResult is one successful answer from POST /ask.
type AskResult struct {
	Answer              string
	Source              string
	SystemPromptApplied bool
}

// HealthStatus is one successful probe of GET /health.
type HealthStatus struct {
	Status          string
	Version         string
	GigachatEnabled bool
}

// IsOK reports whether the service reported itself healthy.
func (h HealthStatus) IsOK() bool {
	return strings.EqualFold(h.Status, "ok")
}

// ModeLabel names the backend mode shown next to the status.
func (h HealthStatus) ModeLabel() string {
	if h.GigachatEnabled {
		return "GigaChat"
	}
	return "mock"
}
