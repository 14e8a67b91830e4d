package domain

import "strings"

// Question is a user question that is guaranteed to contain non-blank text.
type Question struct {
	text string
}

// NewQuestion validates raw input. The original text is kept as-is, surrounding
// whitespace included.
func NewQuestion(raw string) (Question, error) {
	if strings.TrimSpace(raw) == "" {
		return Question{}, ErrEmptyQuestion
	}
	return Question{text: raw}, nil
}

// String returns the question text exactly as entered.
func (q Question) String() string {
	return q.text
}

// APIBaseURL is the root of the remote service. Only emptiness is checked;
// scheme and host are left to the transport.
type APIBaseURL struct {
	raw string
}

// NewAPIBaseURL validates raw input and keeps the original text.
func NewAPIBaseURL(raw string) (APIBaseURL, error) {
	if strings.TrimSpace(raw) == "" {
		return APIBaseURL{}, ErrEmptyBaseURL
	}
	return APIBaseURL{raw: raw}, nil
}

// MustAPIBaseURL is NewAPIBaseURL for compile-time constants.
func MustAPIBaseURL(raw string) APIBaseURL {
	u, err := NewAPIBaseURL(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the URL exactly as configured.
func (u APIBaseURL) String() string {
	return u.raw
}

// IsZero reports whether u was never constructed.
func (u APIBaseURL) IsZero() bool {
	return u.raw == ""
}

// Join appends an endpoint path so that exactly one slash separates the base
// and the path: "http://host/" + "/health" and "http://host" + "health" both
// yield "http://host/health".
func (u APIBaseURL) Join(path string) string {
	base := strings.TrimRight(u.raw, "/")
	path = strings.TrimLeft(path, "/")
	return base + "/" + path
}
