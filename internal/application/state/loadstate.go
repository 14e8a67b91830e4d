// Package state holds the UI-facing projection of asynchronous requests: the
// LoadState machine, observable cells the presentation layer renders from, and
// the Controller that turns user actions into state transitions.
package state

import (
	"time"

	"github.com/doeshing/gigachat-go/internal/domain"
)

// Phase is the discriminant of a LoadState.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// LoadState is Idle, Loading, Ready(value) or Error(message). The zero value is Idle.
type LoadState[T any] struct {
	phase   Phase
	value   T
	message string
}

// Idle is the initial state. Nothing transitions back to it.
func Idle[T any]() LoadState[T] {
	return LoadState[T]{phase: PhaseIdle}
}

// Loading drops whatever payload the previous state carried.
func Loading[T any]() LoadState[T] {
	return LoadState[T]{phase: PhaseLoading}
}

// Ready carries a successful result.
func Ready[T any](value T) LoadState[T] {
	return LoadState[T]{phase: PhaseReady, value: value}
}

// Failed carries a human-readable error message.
func Failed[T any](message string) LoadState[T] {
	return LoadState[T]{phase: PhaseError, message: message}
}

func (s LoadState[T]) Phase() Phase { return s.phase }

// Value returns the payload of a Ready state.
func (s LoadState[T]) Value() (T, bool) {
	return s.value, s.phase == PhaseReady
}

// Message returns the error text of an Error state.
func (s LoadState[T]) Message() string { return s.message }

func (s LoadState[T]) IsLoading() bool { return s.phase == PhaseLoading }

// IsTerminal reports Ready or Error.
func (s LoadState[T]) IsTerminal() bool {
	return s.phase == PhaseReady || s.phase == PhaseError
}

// HealthView is the status panel state. LastChecked is set on every terminal
// transition that reached the gateway and cleared on Loading.
type HealthView struct {
	State       LoadState[domain.HealthStatus]
	LastChecked *time.Time
}

// AskState is the answer panel state.
type AskState = LoadState[domain.AskResult]
