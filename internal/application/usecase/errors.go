package usecase

import (
	"errors"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// Error is the only error type crossing the use-case boundary. Exactly one of
// Domain or Gateway is set.
type Error struct {
	Domain  domain.DomainError
	Gateway ports.GatewayError
}

// DomainFailure wraps an input invariant violation.
func DomainFailure(err domain.DomainError) Error {
	return Error{Domain: err}
}

// GatewayFailure wraps a failed remote call.
func GatewayFailure(err ports.GatewayError) Error {
	return Error{Gateway: err}
}

// IsDomain reports whether the failure happened before any network access.
func (e Error) IsDomain() bool {
	return e.Domain != ""
}

// IsGateway reports whether the failure came from the remote call.
func (e Error) IsGateway() bool {
	return e.Gateway.Kind != 0
}

func (e Error) Error() string {
	if e.IsDomain() {
		return "Ошибка домена: " + e.Domain.Error()
	}
	return "Ошибка шлюза: " + e.Gateway.Error()
}

// Unwrap exposes the tier-specific error to errors.Is and errors.As.
func (e Error) Unwrap() error {
	if e.IsDomain() {
		return e.Domain
	}
	return e.Gateway
}

func domainFailure(err error) Error {
	var de domain.DomainError
	if errors.As(err, &de) {
		return DomainFailure(de)
	}
	// Value objects only ever return DomainError.
	return GatewayFailure(ports.AsGatewayError(err))
}
