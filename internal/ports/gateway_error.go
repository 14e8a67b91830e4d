package ports

import "errors"

// GatewayErrorKind classifies a failed remote call.
type GatewayErrorKind int

const (
	// GatewayNetwork is a transport failure: connection, DNS, timeout.
	GatewayNetwork GatewayErrorKind = iota + 1
	// GatewayAPI means the service answered but reported a failure.
	GatewayAPI
	// GatewayInvalidPayload means the service claimed success with a body of the wrong shape.
	GatewayInvalidPayload
)

func (k GatewayErrorKind) String() string {
	switch k {
	case GatewayNetwork:
		return "network"
	case GatewayAPI:
		return "api"
	case GatewayInvalidPayload:
		return "invalid_payload"
	default:
		return "unknown"
	}
}

// GatewayError is the failure type of ChatGateway and HealthGateway. It is a
// comparable value so errors.Is matches on kind and detail.
type GatewayError struct {
	Kind   GatewayErrorKind
	Detail string
}

// NetworkError reports a transport-level failure.
func NetworkError(detail string) GatewayError {
	return GatewayError{Kind: GatewayNetwork, Detail: detail}
}

// APIError reports a failure returned by the remote service.
func APIError(detail string) GatewayError {
	return GatewayError{Kind: GatewayAPI, Detail: detail}
}

// ErrInvalidPayload is returned when a success body matches no known shape.
var ErrInvalidPayload = GatewayError{Kind: GatewayInvalidPayload}

func (e GatewayError) Error() string {
	switch e.Kind {
	case GatewayNetwork:
		return "Сетевая ошибка: " + e.Detail
	case GatewayAPI:
		return "Ошибка API: " + e.Detail
	case GatewayInvalidPayload:
		return "Некорректный ответ API"
	default:
		return "gateway error: " + e.Detail
	}
}

// AsGatewayError extracts a GatewayError from err. Errors that did not come from
// an adapter are treated as network failures so the taxonomy stays closed.
func AsGatewayError(err error) GatewayError {
	var ge GatewayError
	if errors.As(err, &ge) {
		return ge
	}
	return NetworkError(err.Error())
}
