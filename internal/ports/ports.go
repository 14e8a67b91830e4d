// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The use cases depend only on ChatGateway and
// HealthGateway; the HTTP client in infrastructure/api implements both, and tests
// substitute deterministic stubs.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., ChatGateway, SettingsStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/gigachat-go/internal/domain"
)

// ChatGateway sends a validated question to the backend.
type ChatGateway interface {
	Ask(ctx context.Context, question domain.Question) (domain.AskResult, error)
}

// HealthGateway probes backend availability.
type HealthGateway interface {
	Health(ctx context.Context) (domain.HealthStatus, error)
}

// Gateway is the full remote API surface. The API client satisfies it.
type Gateway interface {
	ChatGateway
	HealthGateway
}

// GatewayFactory builds a gateway rooted at a base URL. The presentation layer
// builds a fresh gateway for every triggered action so that a changed base URL
// takes effect immediately.
type GatewayFactory interface {
	ForBaseURL(domain.APIBaseURL) Gateway
}

// SettingsStore is a persistent key-value store, the terminal counterpart of
// browser localStorage.
type SettingsStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.gigachat/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// HistoryRepository persists finished requests.
type HistoryRepository interface {
	Save(record domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// Clock abstracts wall time so tests can pin timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now.
var SystemClock Clock = ClockFunc(time.Now)

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
