// Package settings manages the API base URL chosen by the user. Sources, by
// priority: the value saved in the settings store, the API_BASE_URL environment
// variable, then the built-in default.
package settings

import (
	"fmt"
	"os"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/pkg/logger"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// User-facing notices.
const (
	NoticeSaved = "Базовый URL сохранен"
	NoticeReset = "URL сброшен к значению по умолчанию"
)

// Service loads, saves and resets the base URL.
type Service struct {
	store ports.SettingsStore
	log   ports.Logger
}

// NewService wraps store. A nil logger discards output.
func NewService(store ports.SettingsStore, log ports.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{store: store, log: log}
}

// Load returns the saved base URL when it is present and valid, otherwise the
// default. Store read failures fall back silently.
func (s *Service) Load() domain.APIBaseURL {
	saved, ok, err := s.store.Get(domain.BaseURLSettingKey)
	switch {
	case err != nil:
		s.log.Warn("settings read failed, using default", map[string]interface{}{"error": err.Error()})
	case ok:
		if u, err := domain.NewAPIBaseURL(saved); err == nil {
			return u
		}
		s.log.Warn("saved base URL is blank, using default", nil)
	}

	if u, err := domain.NewAPIBaseURL(DefaultBaseURL()); err == nil {
		return u
	}
	return domain.MustAPIBaseURL(domain.DefaultAPIBaseURL)
}

// DefaultBaseURL returns API_BASE_URL when set, otherwise the built-in default.
func DefaultBaseURL() string {
	if v, ok := os.LookupEnv(domain.EnvAPIBaseURL); ok {
		return v
	}
	return domain.DefaultAPIBaseURL
}

// Parse validates user input into a base URL.
func (s *Service) Parse(raw string) (domain.APIBaseURL, error) {
	return domain.NewAPIBaseURL(raw)
}

// Save validates raw and persists it. The returned error is either a
// domain.DomainError or a wrapped store failure.
func (s *Service) Save(raw string) (domain.APIBaseURL, error) {
	u, err := s.Parse(raw)
	if err != nil {
		return domain.APIBaseURL{}, err
	}
	if err := s.store.Set(domain.BaseURLSettingKey, u.String()); err != nil {
		return domain.APIBaseURL{}, fmt.Errorf("save base url: %w", err)
	}
	s.log.Info("base URL saved", map[string]interface{}{"base_url": u.String()})
	return u, nil
}

// Reset switches back to the default. A failure to persist the default is
// logged but does not fail the reset.
func (s *Service) Reset() (domain.APIBaseURL, error) {
	u, err := s.Parse(DefaultBaseURL())
	if err != nil {
		return domain.APIBaseURL{}, err
	}
	if err := s.store.Set(domain.BaseURLSettingKey, u.String()); err != nil {
		s.log.Warn("persisting default base URL failed", map[string]interface{}{"error": err.Error()})
	}
	return u, nil
}
