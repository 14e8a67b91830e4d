package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/gigachat-go/internal/domain"
)

func TestFileLoaderWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestFileLoaderHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  enabled: false\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHTTPTimeoutSeconds, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, domain.HistoryBackendSQLite, cfg.History.Backend)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.History.Enabled)
}

func TestFileLoaderRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unterminated"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.ErrorContains(t, err, "parse")
}

func TestFileLoaderBackupAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg := DefaultConfig()
	cfg.HTTP.TimeoutSeconds = 5
	require.NoError(t, loader.Save(cfg))

	backup, err := loader.Backup()
	require.NoError(t, err)
	assert.FileExists(t, backup)

	reset, err := loader.Reset()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), reset)

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHTTPTimeoutSeconds, loaded.HTTP.TimeoutSeconds)
}

func TestFileLoaderPathFromEnv(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("GIGACHAT_CONFIG", custom)
	assert.Equal(t, custom, NewFileLoader("").Path())
}

func TestYAMLStoreRoundTrip(t *testing.T) {
	store := NewYAMLStore(filepath.Join(t.TempDir(), "settings.yaml"))

	_, ok, err := store.Get(domain.BaseURLSettingKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as empty")

	require.NoError(t, store.Set(domain.BaseURLSettingKey, "http://example:9000"))
	require.NoError(t, store.Set("other", "value"))

	v, ok, err := store.Get(domain.BaseURLSettingKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://example:9000", v)

	v, _, err = store.Get("other")
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}

func TestYAMLStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))

	store := NewYAMLStore(path)
	_, _, err := store.Get(domain.BaseURLSettingKey)
	assert.Error(t, err)
	assert.Error(t, store.Set(domain.BaseURLSettingKey, "x"))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GIGACHAT_TEST_ONLY=from-file\nAPI_BASE_URL=http://dotenv:1\n"), 0o600))
	t.Setenv(domain.EnvAPIBaseURL, "http://already-set:2")
	t.Cleanup(func() { _ = os.Unsetenv("GIGACHAT_TEST_ONLY") })

	LoadDotEnv(dir)

	assert.Equal(t, "from-file", os.Getenv("GIGACHAT_TEST_ONLY"))
	assert.Equal(t, "http://already-set:2", os.Getenv(domain.EnvAPIBaseURL))
}

func TestWatchFileReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	require.NoError(t, WatchFile(ctx, path, func() { changed <- struct{}{} }, nil))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600))
	require.NoError(t, NewYAMLStore(path).Set(domain.BaseURLSettingKey, "http://changed:1"))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification for settings file")
	}
}
