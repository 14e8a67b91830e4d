package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/gigachat-go/internal/domain"
)

func TestNewQuestion(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "empty", raw: "", wantErr: domain.ErrEmptyQuestion},
		{name: "spaces", raw: "   ", wantErr: domain.ErrEmptyQuestion},
		{name: "tabs and newlines", raw: "\t\n \r\n", wantErr: domain.ErrEmptyQuestion},
		{name: "plain text", raw: "Что такое Rust?"},
		{name: "padded text is kept untrimmed", raw: "  why?  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := domain.NewQuestion(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, q.String())
		})
	}
}

func TestNewAPIBaseURL(t *testing.T) {
	_, err := domain.NewAPIBaseURL(" \t ")
	require.ErrorIs(t, err, domain.ErrEmptyBaseURL)

	u, err := domain.NewAPIBaseURL(" not-a-url ")
	require.NoError(t, err)
	assert.Equal(t, " not-a-url ", u.String())
	assert.False(t, u.IsZero())
	assert.True(t, domain.APIBaseURL{}.IsZero())
}

func TestAPIBaseURLJoin(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{base: "http://localhost:8000/", path: "/health", want: "http://localhost:8000/health"},
		{base: "http://localhost:8000", path: "health", want: "http://localhost:8000/health"},
		{base: "http://localhost:8000/", path: "health", want: "http://localhost:8000/health"},
		{base: "http://localhost:8000", path: "/health", want: "http://localhost:8000/health"},
		{base: "http://localhost:8000/", path: "ask", want: "http://localhost:8000/ask"},
		{base: "http://localhost:8000/api/", path: "/ask", want: "http://localhost:8000/api/ask"},
	}

	for _, tt := range tests {
		t.Run(tt.base+"+"+tt.path, func(t *testing.T) {
			u := domain.MustAPIBaseURL(tt.base)
			assert.Equal(t, tt.want, u.Join(tt.path))
		})
	}
}

func TestDomainErrorMessages(t *testing.T) {
	assert.Equal(t, "Вопрос не должен быть пустым", domain.ErrEmptyQuestion.Error())
	assert.Equal(t, "Базовый URL API не задан", domain.ErrEmptyBaseURL.Error())
}

func TestHealthStatusLabels(t *testing.T) {
	assert.True(t, domain.HealthStatus{Status: "OK"}.IsOK())
	assert.False(t, domain.HealthStatus{Status: "degraded"}.IsOK())
	assert.Equal(t, "GigaChat", domain.HealthStatus{GigachatEnabled: true}.ModeLabel())
	assert.Equal(t, "mock", domain.HealthStatus{}.ModeLabel())
}

func TestMustAPIBaseURLPanicsOnBlank(t *testing.T) {
	assert.Panics(t, func() { domain.MustAPIBaseURL("  ") })
}
