package state

import (
	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/pkg/logger"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// HistoryObserver appends every finished task to a history repository.
// Save failures are logged and otherwise ignored.
type HistoryObserver struct {
	repo ports.HistoryRepository
	log  ports.Logger
}

// NewHistoryObserver wraps repo.
func NewHistoryObserver(repo ports.HistoryRepository, log ports.Logger) *HistoryObserver {
	if log == nil {
		log = logger.NewNop()
	}
	return &HistoryObserver{repo: repo, log: log}
}

// TaskFinished implements TaskObserver.
func (o *HistoryObserver) TaskFinished(r TaskResult) {
	record := domain.HistoryRecord{
		ID:         r.ID,
		Timestamp:  r.Finished,
		Kind:       r.Kind,
		BaseURL:    r.BaseURL,
		Question:   r.Question,
		Outcome:    r.Outcome,
		Detail:     r.Detail,
		Source:     r.Source,
		DurationMS: r.Finished.Sub(r.Started).Milliseconds(),
	}
	if err := o.repo.Save(record); err != nil {
		o.log.Warn("history save failed", map[string]interface{}{"request_id": r.ID, "error": err.Error()})
	}
}

var _ TaskObserver = (*HistoryObserver)(nil)
