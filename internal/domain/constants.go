package domain

import "time"

// API defaults
const (
	// DefaultAPIBaseURL is used when nothing is stored and API_BASE_URL is unset
	DefaultAPIBaseURL = "http://127.0.0.1:8000"
	// EnvAPIBaseURL overrides the default base URL
	EnvAPIBaseURL = "API_BASE_URL"
	// BaseURLSettingKey is the settings key the chosen base URL is stored under
	BaseURLSettingKey = "rust_gigachat_webapp.api_base_url"
)

// Endpoint paths
const (
	AskPath    = "/ask"
	HealthPath = "/health"
)

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 30 * time.Second
	// DefaultHTTPTimeoutSeconds mirrors DefaultHTTPClientTimeout for config files
	DefaultHTTPTimeoutSeconds = 30
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
