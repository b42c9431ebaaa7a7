package app

import (
	"context"
	"fmt"
	"log/slog"

	"BulletinScanner/internal/config"
	"BulletinScanner/internal/infrastructure/fetcher"
	"BulletinScanner/internal/infrastructure/storage"
	"BulletinScanner/internal/logging"
	"BulletinScanner/internal/ports"
	"BulletinScanner/internal/usecase"
)

// Application wires config to the pipeline and owns adapter lifecycles.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	archive  *storage.SQLiteArchive
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	client := fetcher.New(cfg.Source.Timeout(), cfg.Source.UserAgent)

	var archive *storage.SQLiteArchive
	var archivePort ports.BulletinArchive
	if cfg.Archive.Path != "" {
		opened, err := storage.Open(cfg.Archive.Path)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		archive = opened
		archivePort = opened
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher:    client,
		Archive:    archivePort,
		Logger:     baseLogger.With("component", "pipeline"),
		SourceName: cfg.Source.Name,
		BaseURL:    cfg.Source.BaseURL,
		IndexURL:   cfg.Source.IndexURL,
		OutputPath: cfg.Output.Path,
	})

	return &Application{cfg: cfg, pipeline: pipeline, archive: archive}, nil
}

// Run performs one full extraction pass and returns the bulletin count.
func (a *Application) Run(ctx context.Context) (int, error) {
	return a.pipeline.Run(ctx)
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.archive != nil {
		return a.archive.Close()
	}
	return nil
}
