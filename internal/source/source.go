package source

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pricecheck-service/internal/config"
	"pricecheck-service/internal/fileio"
)

// Blob is a downloaded spreadsheet. Name carries the extension the parser dispatches on.
type Blob struct {
	Name string
	Data []byte
}

// Loader downloads the raw bytes of a dataset.
type Loader interface {
	Load(ctx context.Context, datasetID string) (Blob, error)
}

// Sheets parses and cleans whatever a Loader returns.
type Sheets struct {
	loader Loader
	rules  fileio.CleanRules
	log    zerolog.Logger
}

func NewSheets(l Loader, rules fileio.CleanRules, logger zerolog.Logger) *Sheets {
	return &Sheets{loader: l, rules: rules, log: logger}
}

// Fetch downloads datasetID, reads sheet ("" = first) and applies the clean rules.
func (s *Sheets) Fetch(ctx context.Context, datasetID, sheet string) (*fileio.Table, error) {
	start := time.Now()
	blob, err := s.loader.Load(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", datasetID, err)
	}
	tbl, err := fileio.ReadAny(bytes.NewReader(blob.Data), blob.Name, fileio.ReadOptions{Sheet: sheet, HeaderRow: 1})
	if err != nil {
		return nil, fmt.Errorf("parse %s (%s): %w", datasetID, blob.Name, err)
	}
	fileio.Clean(tbl, s.rules)
	s.log.Info().
		Str("dataset", datasetID).
		Str("sheet", sheet).
		Str("file", blob.Name).
		Int("bytes", len(blob.Data)).
		Int("rows", tbl.Len()).
		Int("cols", len(tbl.Columns)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset fetched")
	return tbl, nil
}

// New builds the cached fetcher chain for cfg.Source.Kind. The returned closer releases
// client connections.
func New(ctx context.Context, cfg config.SourceConfig, rules fileio.CleanRules, logger zerolog.Logger) (*Cache, func() error, error) {
	logger = logger.With().Str("component", "source").Str("kind", cfg.Kind).Logger()
	var (
		loader Loader
		closer = func() error { return nil }
	)
	switch cfg.Kind {
	case "drive":
		d, err := NewDriveLoader(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		loader = d
	case "gcs":
		g, err := NewGCSLoader(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		loader, closer = g, g.Close
	case "local":
		loader = LocalLoader{Dir: cfg.LocalDir}
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
	cache := NewCache(NewSheets(loader, rules, logger), cfg.CacheSize, cfg.CacheTTL, logger)
	return cache, closer, nil
}

// withExt makes sure name ends in ext.
func withExt(name, ext string) string {
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}
