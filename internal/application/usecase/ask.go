// Package usecase holds the two application scenarios: asking a question and
// checking service health. Both depend only on the gateway ports, never on the
// HTTP client, and both perform exactly one delegated call with no retries and
// no caching.
package usecase

import (
	"context"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/pkg/logger"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// AskQuestion validates a raw question and sends it to the chat gateway.
type AskQuestion struct {
	gateway ports.ChatGateway
	log     ports.Logger
}

// NewAskQuestion builds the use case. A nil logger discards output.
func NewAskQuestion(gateway ports.ChatGateway, log ports.Logger) *AskQuestion {
	if log == nil {
		log = logger.NewNop()
	}
	return &AskQuestion{gateway: gateway, log: log}
}

// Execute validates raw and, only if it is a valid question, calls the gateway.
// Failures are returned as Error.
func (u *AskQuestion) Execute(ctx context.Context, raw string) (domain.AskResult, error) {
	question, err := domain.NewQuestion(raw)
	if err != nil {
		return domain.AskResult{}, domainFailure(err)
	}

	u.log.Debug("asking question", map[string]interface{}{"length": len(question.String())})

	result, err := u.gateway.Ask(ctx, question)
	if err != nil {
		ge := ports.AsGatewayError(err)
		u.log.Debug("ask failed", map[string]interface{}{"kind": ge.Kind.String()})
		return domain.AskResult{}, GatewayFailure(ge)
	}
	return result, nil
}
