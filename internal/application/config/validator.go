package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/gigachat-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout must be > 0, got %d", cfg.HTTP.TimeoutSeconds)
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if err := validateLog(cfg.Log); err != nil {
		return err
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch strings.ToLower(history.Backend) {
	case "", domain.HistoryBackendSQLite, domain.HistoryBackendJSONL:
		return nil
	default:
		return fmt.Errorf("history.backend must be sqlite|jsonl, got %s", history.Backend)
	}
}

func validateLog(log domain.LogSettings) error {
	switch strings.ToLower(log.Format) {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("log.format must be console|json, got %s", log.Format)
	}
}
