package history

import (
	"path/filepath"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// Open picks the repository for settings. A SQLite store that cannot be opened
// degrades to the jsonl file store in the same directory.
func Open(dir string, settings domain.HistorySettings, log ports.Logger) ports.HistoryRepository {
	if settings.Path != "" {
		dir = settings.Path
	}
	jsonl := NewFileStore(filepath.Join(dir, "history.jsonl"))
	if settings.Backend == domain.HistoryBackendJSONL {
		return jsonl
	}
	store, err := OpenSQLiteStore(filepath.Join(dir, "history.db"))
	if err != nil {
		if log != nil {
			log.Warn("sqlite history unavailable, using jsonl", map[string]interface{}{"error": err.Error()})
		}
		return jsonl
	}
	return store
}
