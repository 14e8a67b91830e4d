package domain

// Config mirrors ~/.gigachat/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	HTTP                HTTPSettings    `yaml:"http"`
	History             HistorySettings `yaml:"history"`
	Session             SessionSettings `yaml:"session"`
	Log                 LogSettings     `yaml:"log"`
}

// HTTPSettings configures the transport used by the API client.
type HTTPSettings struct {
	TimeoutSeconds int `yaml:"timeout"`
}

// HistorySettings controls how finished requests are recorded.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// SessionSettings tunes the interactive session.
type SessionSettings struct {
	HealthOnStart bool `yaml:"health_on_start"`
	WatchSettings bool `yaml:"watch_settings"`
}

// LogSettings selects the log encoder.
type LogSettings struct {
	Format string `yaml:"format"`
}

// History backends.
const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendJSONL  = "jsonl"
)
