package main

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/tubedash/internal/config"
	"github.com/mathieu-neron/tubedash/internal/dataset"
	"github.com/mathieu-neron/tubedash/internal/model"
)

// newSource picks the dataset source named by cfg.DataSource.
func newSource(cfg *config.Config, log zerolog.Logger) dataset.Source {
	src := cfg.DataSource
	switch {
	case src == config.SourcePostgres:
		return dataset.PostgresSource{DatabaseURL: cfg.DatabaseURL, Table: cfg.DatasetTable, Log: log}
	case !cfg.IsRemote():
		return dataset.FileSource{Path: src}
	case strings.HasPrefix(src, "drive:"):
		return dataset.HTTPSource{URL: dataset.DriveURL(strings.TrimPrefix(src, "drive:")), Timeout: cfg.HTTPTimeout}
	default:
		return dataset.HTTPSource{URL: src, Timeout: cfg.HTTPTimeout}
	}
}

// loadDataset loads the configured source once, honoring the retry settings.
func loadDataset(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*model.Dataset, error) {
	loader := dataset.NewLoader(log, cfg.LoadRetries, cfg.LoadRetryInterval)
	return loader.Load(ctx, newSource(cfg, log))
}
