package api

import (
	"net/http"
	"time"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/pkg/logger"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// Factory builds clients that share one http.Client.
type Factory struct {
	httpClient *http.Client
	log        ports.Logger
}

// NewFactory returns a factory whose clients time out after timeout. A zero
// timeout falls back to domain.DefaultHTTPClientTimeout.
func NewFactory(timeout time.Duration, log ports.Logger) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ForBaseURL implements ports.GatewayFactory.
func (f *Factory) ForBaseURL(baseURL domain.APIBaseURL) ports.Gateway {
	return NewClient(baseURL, f.httpClient, f.log)
}

var _ ports.GatewayFactory = (*Factory)(nil)
