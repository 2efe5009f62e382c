// Package bootstrap wires config, the dataset source and the price-check service together
// for the server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"pricecheck-service/internal/config"
	"pricecheck-service/internal/pricecheck/service"
	"pricecheck-service/internal/source"
)

type App struct {
	Service *service.Service
	Cache   *source.Cache
	close   func() error
}

func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

func Datasets(cfg config.DatasetsConfig) service.Datasets {
	return service.Datasets{
		DBFileID: cfg.DBFileID,
		DBSheet:  cfg.DBSheet,
		SJFileID: cfg.SJFileID,
		SJSheet:  cfg.SJSheet,
	}
}

func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	cache, closeFn, err := source.New(ctx, cfg.Source, service.SourceCleanRules, logger)
	if err != nil {
		return nil, fmt.Errorf("init source %q: %w", cfg.Source.Kind, err)
	}
	return &App{
		Service: service.New(cache, Datasets(cfg.Datasets), logger),
		Cache:   cache,
		close:   closeFn,
	}, nil
}
