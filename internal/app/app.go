package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/songmatch/internal/config"
	"github.com/five82/songmatch/internal/logging"
	"github.com/five82/songmatch/internal/prefs"
	"github.com/five82/songmatch/internal/songs"
	"github.com/five82/songmatch/internal/state"
	"github.com/five82/songmatch/internal/ui"
)

// Options configure the songmatch application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/songmatch/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	ServerURL  string // overrides server_url when set
	LogLevel   string // overrides log_level when set
}

const uiRefresh = 250 * time.Millisecond

// Run boots the songmatch TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts.ConfigPath, opts.ServerURL, opts.LogLevel)
	if err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := songs.NewClient(cfg.ServerURL, cfg.Timeout, logger)
	if err != nil {
		return fmt.Errorf("init songs client: %w", err)
	}
	logger.Info().Str("server", client.BaseURL()).Str("config", cfg.SourcePath).Msg("songmatch starting")

	store := &state.Store{}
	catalogue := NewCatalogue(client, store, cfg.PageLimit, logger)
	defer catalogue.Close()
	actions := NewActions(client, store, logger, catalogue.Reload)
	defer actions.Close()

	interval := cfg.PollEvery
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	ctx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()

	catalogue.Show(userPrefs.LastPage)
	StartPoller(ctx, catalogue, store, interval)

	uiOpts := ui.Options{
		Context:     ctx,
		Store:       store,
		Catalogue:   catalogue,
		Actions:     actions,
		ServerURL:   client.BaseURL(),
		LogFile:     cfg.LogFile,
		RefreshTick: uiRefresh,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
	}
	runErr := ui.Run(uiOpts)

	rememberPage(opts.PrefsPath, catalogue.Page(), logger)
	logger.Info().Msg("songmatch stopped")
	return runErr
}

// LoadConfig reads the config file and applies command-line overrides.
func LoadConfig(path, serverURL, logLevel string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load songmatch config: %w", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// rememberPage re-reads prefs so a theme chosen in the UI is kept.
func rememberPage(path string, page int, logger zerolog.Logger) {
	current, _ := prefs.Load(path)
	current.LastPage = page
	if err := prefs.Save(path, current); err != nil {
		logger.Warn().Err(err).Msg("save prefs")
	}
}
