// Package api is the HTTP adapter for the remote question-answering service.
// Client implements both ports.ChatGateway and ports.HealthGateway over JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/pkg/logger"
	"github.com/doeshing/gigachat-go/internal/ports"
	"github.com/doeshing/gigachat-go/internal/version"
)

// Client talks to the backend rooted at baseURL.
type Client struct {
	baseURL    domain.APIBaseURL
	httpClient *http.Client
	log        ports.Logger
}

// NewClient builds a client. A nil http.Client uses one with the default timeout;
// a nil logger discards output.
func NewClient(baseURL domain.APIBaseURL, httpClient *http.Client, log ports.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

// BaseURL returns the service root the client was built for.
func (c *Client) BaseURL() domain.APIBaseURL {
	return c.baseURL
}

// Ask sends POST {base}/ask.
//
// A success status whose body is not an answer is first tried as an error body,
// so a 200 carrying {"error": ...} surfaces as an API error rather than an
// invalid payload.
func (c *Client) Ask(ctx context.Context, question domain.Question) (domain.AskResult, error) {
	payload, err := json.Marshal(askRequestDTO{Question: question.String()})
	if err != nil {
		return domain.AskResult{}, ports.NetworkError(err.Error())
	}

	status, body, err := c.do(ctx, http.MethodPost, domain.AskPath, payload)
	if err != nil {
		return domain.AskResult{}, err
	}

	if !isSuccess(status) {
		if apiErr, ok := parseErrorResponse(body); ok {
			return domain.AskResult{}, ports.APIError(apiErr.detail())
		}
		return domain.AskResult{}, ports.APIError(httpDetail(status, body))
	}

	dto, ok := parseAskResponse(body)
	if !ok {
		if apiErr, ok := parseErrorResponse(body); ok {
			return domain.AskResult{}, ports.APIError(apiErr.detail())
		}
		return domain.AskResult{}, ports.ErrInvalidPayload
	}

	return domain.AskResult{
		Answer:              *dto.Answer,
		Source:              *dto.Source,
		SystemPromptApplied: *dto.SystemPromptApplied,
	}, nil
}

// Health sends GET {base}/health. Unlike Ask, error bodies are never parsed here.
func (c *Client) Health(ctx context.Context) (domain.HealthStatus, error) {
	status, body, err := c.do(ctx, http.MethodGet, domain.HealthPath, nil)
	if err != nil {
		return domain.HealthStatus{}, err
	}

	if !isSuccess(status) {
		return domain.HealthStatus{}, ports.APIError(httpDetail(status, body))
	}

	dto, ok := parseHealthResponse(body)
	if !ok {
		return domain.HealthStatus{}, ports.ErrInvalidPayload
	}

	return domain.HealthStatus{
		Status:          *dto.Status,
		Version:         *dto.Version,
		GigachatEnabled: *dto.GigachatEnabled,
	}, nil
}

// do performs one request and returns the status and the body text. Transport
// failures come back as network errors. A body that cannot be read is treated
// as empty.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	endpoint := c.baseURL.Join(path)

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, nil, ports.NetworkError(err.Error())
	}
	if payload != nil {
		httpReq.Header.Set("content-type", "application/json")
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("user-agent", version.UserAgent())

	c.log.Debug("api request", map[string]interface{}{"method": method, "url": endpoint})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, ports.NetworkError(err.Error())
	}
	defer resp.Body.Close()

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		c.log.Warn("api response body unreadable", map[string]interface{}{"url": endpoint, "error": err.Error()})
		responseBody.Reset()
	}

	c.log.Debug("api response", map[string]interface{}{"url": endpoint, "status": resp.StatusCode, "bytes": responseBody.Len()})
	return resp.StatusCode, responseBody.Bytes(), nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func httpDetail(status int, body []byte) string {
	return fmt.Sprintf("HTTP %d: %s", status, body)
}

var (
	_ ports.ChatGateway   = (*Client)(nil)
	_ ports.HealthGateway = (*Client)(nil)
	_ ports.Gateway       = (*Client)(nil)
)
