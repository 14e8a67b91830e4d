package domain

// DomainError is an input invariant violation detected before any I/O.
type DomainError string

func (e DomainError) Error() string {
	return string(e)
}

const (
	// ErrEmptyQuestion rejects blank questions.
	ErrEmptyQuestion DomainError = "Вопрос не должен быть пустым"
	// ErrEmptyBaseURL rejects a blank API base URL.
	ErrEmptyBaseURL DomainError = "Базовый URL API не задан"
)
