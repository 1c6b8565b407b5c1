package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/five82/pitchdeck/internal/config"
	"github.com/five82/pitchdeck/internal/docgen"
	"github.com/five82/pitchdeck/internal/download"
	"github.com/five82/pitchdeck/internal/logging"
	"github.com/five82/pitchdeck/internal/prefs"
	"github.com/five82/pitchdeck/internal/ui"
)

// Options configure the pitchdeck application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/pitchdeck/prefs.toml
	DownloadDir string // overrides download_dir from the config file
	Debug       bool
}

// Run boots the pitchdeck TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.closer.Close() }()

	rt.log.WithFields(logrus.Fields{
		"api_url":      rt.client.BaseURL(),
		"download_dir": rt.cfg.DownloadDir,
		"theme":        rt.theme,
	}).Info("pitchdeck starting")

	err = ui.Run(ui.Options{
		Context:     ctx,
		Service:     rt.client,
		Downloader:  rt.saver,
		Logger:      rt.log,
		LogFile:     rt.cfg.LogFile,
		DownloadDir: rt.cfg.DownloadDir,
		ThemeName:   rt.theme,
		PrefsPath:   opts.PrefsPath,
	})
	if err != nil {
		rt.log.WithError(err).Error("ui exited with error")
		return err
	}
	rt.log.Info("pitchdeck stopped")
	return nil
}

// runtime holds everything built from configuration before the UI starts.
type runtime struct {
	cfg    config.Config
	log    *logrus.Logger
	closer io.Closer
	client *docgen.Client
	saver  *download.Saver
	theme  string
}

func setup(opts Options) (runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return runtime{}, fmt.Errorf("load config: %w", err)
	}
	if opts.DownloadDir != "" {
		cfg.DownloadDir = opts.DownloadDir
	}

	logger, closer, err := logging.Setup(logging.Options{
		File:  cfg.LogFile,
		Level: cfg.LogLevel,
		Debug: opts.Debug,
	})
	if err != nil {
		return runtime{}, fmt.Errorf("init logging: %w", err)
	}

	clientOpts := []docgen.Option{docgen.WithLogger(logger)}
	if cfg.RequestTimeout > 0 {
		clientOpts = append(clientOpts, docgen.WithTimeout(cfg.RequestTimeout))
	}
	client, err := docgen.NewClient(cfg.APIURL, clientOpts...)
	if err != nil {
		_ = closer.Close()
		return runtime{}, fmt.Errorf("init generation client: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.WithError(err).Warn("could not load preferences")
	}

	return runtime{
		cfg:    cfg,
		log:    logger,
		closer: closer,
		client: client,
		saver:  download.NewSaver(cfg.DownloadDir, logger),
		theme:  userPrefs.ThemeOr(ui.ThemeNames(), ui.ThemeNames()[0]),
	}, nil
}
