package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	appconfig "github.com/doeshing/gigachat-go/internal/application/config"
	"github.com/doeshing/gigachat-go/internal/application/doctor"
	"github.com/doeshing/gigachat-go/internal/application/settings"
	"github.com/doeshing/gigachat-go/internal/application/state"
	"github.com/doeshing/gigachat-go/internal/domain"
	"github.com/doeshing/gigachat-go/internal/infrastructure/api"
	"github.com/doeshing/gigachat-go/internal/infrastructure/config"
	"github.com/doeshing/gigachat-go/internal/infrastructure/history"
	"github.com/doeshing/gigachat-go/internal/pkg/logger"
	"github.com/doeshing/gigachat-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	SettingsStore *config.YAMLStore
	Settings      *settings.Service
	Gateways      ports.GatewayFactory
	HistoryStore  ports.HistoryRepository
	DoctorService *doctor.Service
	Logger        *logger.ZapLogger
	Clock         ports.Clock
}

// BuildContainer constructs the dependency graph. An invalid config file is
// reported but does not stop the CLI from starting with what was parsed.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	config.LoadDotEnv(cfgLoader.Dir())

	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Verbose: verbose, Format: cfg.Log.Format})
	if err := appconfig.Validate(cfg); err != nil {
		log.Warn("config validation failed", map[string]interface{}{"path": cfgLoader.Path(), "error": err.Error()})
	}

	store := config.NewYAMLStore(filepath.Join(cfgLoader.Dir(), "settings.yaml"))
	settingsService := settings.NewService(store, log)
	gateways := api.NewFactory(time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second, log)

	var historyStore ports.HistoryRepository
	if cfg.History.Enabled {
		historyStore = history.Open(filepath.Join(cfgLoader.Dir(), "history"), cfg.History, log)
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Settings:       settingsService,
		History:        historyStore,
		Gateways:       gateways,
		Logger:         log,
	}

	return &Container{
		Config:        cfg,
		ConfigLoader:  cfgLoader,
		SettingsStore: store,
		Settings:      settingsService,
		Gateways:      gateways,
		HistoryStore:  historyStore,
		DoctorService: doctorService,
		Logger:        log,
		Clock:         ports.SystemClock,
	}, nil
}

// NewController builds a controller rooted at the saved base URL. Finished
// tasks are recorded when history is enabled.
func (c *Container) NewController() *state.Controller {
	opts := state.Options{
		Gateways: c.Gateways,
		BaseURL:  c.Settings.Load().String(),
		Clock:    c.Clock,
		Logger:   c.Logger,
	}
	if c.HistoryStore != nil {
		opts.Observer = state.NewHistoryObserver(c.HistoryStore, c.Logger)
	}
	return state.NewController(opts)
}

// WatchSettings keeps ctrl in sync with the settings file until ctx is done.
// Edits made by another process (or `gigachat config set-url`) switch the base
// URL and trigger a fresh health check.
func (c *Container) WatchSettings(ctx context.Context, ctrl *state.Controller) error {
	if err := config.WatchFile(ctx, c.SettingsStore.Path(), func() {
		ctrl.ChangeBaseURL(ctx, c.Settings.Load().String())
	}, c.Logger); err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}
	return nil
}

// Close flushes the logger and releases the history database.
func (c *Container) Close() error {
	if closer, ok := c.HistoryStore.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	_ = c.Logger.Sync()
	return nil
}
