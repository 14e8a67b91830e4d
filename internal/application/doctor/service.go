package doctor

import (
	"context"
	"fmt"

	appconfig "github.com/doeshing/gigachat-go/internal/application/config"
	"github.com/doeshing/gigachat-go/internal/application/settings"
	"github.com/doeshing/gigachat-go/internal/application/usecase"
	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Settings       *settings.Service
	History        ports.HistoryRepository
	Gateways       ports.GatewayFactory
	Logger         ports.Logger
}

// Run executes checks and returns a report. Only a config load failure aborts
// the run; every other problem becomes a check.
func (s *Service) Run(ctx context.Context) (domain.DiagnosticReport, error) {
	var checks []domain.DiagnosticCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.DiagnosticReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded v%s, timeout %ds", cfg.ConfigFormatVersion, cfg.HTTP.TimeoutSeconds)))
	}

	base := s.Settings.Load()
	checks = append(checks, ok("Base URL", base.String()))

	checks = append(checks, s.historyCheck(cfg))

	checks = append(checks, s.apiCheck(ctx, base))

	return domain.DiagnosticReport{Checks: checks}, nil
}

func (s *Service) historyCheck(cfg domain.Config) domain.DiagnosticCheck {
	if !cfg.History.Enabled || s.History == nil {
		return warn("History", "disabled")
	}
	if _, err := s.History.Records(1, ""); err != nil {
		return fail("History", fmt.Sprintf("%s: %v", s.History.Path(), err))
	}
	return ok("History", s.History.Path())
}

func (s *Service) apiCheck(ctx context.Context, base domain.APIBaseURL) domain.DiagnosticCheck {
	if s.Gateways == nil {
		return warn("API health", "no gateway configured")
	}
	status, err := usecase.NewCheckHealth(s.Gateways.ForBaseURL(base), s.Logger).Execute(ctx)
	if err != nil {
		return fail("API health", err.Error())
	}
	details := fmt.Sprintf("status %s, version %s, mode %s", status.Status, status.Version, status.ModeLabel())
	if !status.IsOK() {
		return warn("API health", details)
	}
	return ok("API health", details)
}

func ok(name, details string) domain.DiagnosticCheck {
	return domain.DiagnosticCheck{Name: name, Status: domain.CheckOK, Details: details}
}

func warn(name, details string) domain.DiagnosticCheck {
	return domain.DiagnosticCheck{Name: name, Status: domain.CheckWarn, Details: details}
}

func fail(name, details string) domain.DiagnosticCheck {
	return domain.DiagnosticCheck{Name: name, Status: domain.CheckError, Details: details}
}
