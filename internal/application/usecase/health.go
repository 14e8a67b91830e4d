package usecase

import (
	"context"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/pkg/logger"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// CheckHealth probes the backend. There is no user input, so no validation step.
type CheckHealth struct {
	gateway ports.HealthGateway
	log     ports.Logger
}

// NewCheckHealth builds the use case. A nil logger discards output.
func NewCheckHealth(gateway ports.HealthGateway, log ports.Logger) *CheckHealth {
	if log == nil {
		log = logger.NewNop()
	}
	return &CheckHealth{gateway: gateway, log: log}
}

// Execute calls the gateway once and wraps any failure as Error.
func (u *CheckHealth) Execute(ctx context.Context) (domain.HealthStatus, error) {
	status, err := u.gateway.Health(ctx)
	if err != nil {
		ge := ports.AsGatewayError(err)
		u.log.Debug("health check failed", map[string]interface{}{"kind": ge.Kind.String()})
		return domain.HealthStatus{}, GatewayFailure(ge)
	}
	u.log.Debug("health check ok", map[string]interface{}{"status": status.Status, "version": status.Version})
	return status, nil
}
