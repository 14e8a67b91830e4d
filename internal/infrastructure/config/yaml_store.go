package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// YAMLStore is a flat key-value store persisted as a YAML map, the terminal
// counterpart of browser localStorage.
type YAMLStore struct {
	path string
	mu   sync.Mutex
}

// NewYAMLStore stores values in path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Get implements ports.SettingsStore. A missing file or key is not an error.
func (s *YAMLStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements ports.SettingsStore. The file is replaced atomically.
func (s *YAMLStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value

	raw, err := yaml.Marshal(values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, domain.SecureFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Path returns the backing file path.
func (s *YAMLStore) Path() string {
	return s.path
}

func (s *YAMLStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

var _ ports.SettingsStore = (*YAMLStore)(nil)
