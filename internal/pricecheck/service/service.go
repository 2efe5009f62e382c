package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/pricecheck/model"
)

// Fetcher supplies cleaned sheets. Implementations are expected to memoize.
type Fetcher interface {
	Fetch(ctx context.Context, datasetID, sheet string) (*fileio.Table, error)
}

// Datasets locates the similarity database and the SJ history.
type Datasets struct {
	DBFileID string
	DBSheet  string
	SJFileID string
	SJSheet  string
}

// Service runs the dashboard actions against fetched snapshots. Every call works on its own
// view of the data; cached tables are never modified.
type Service struct {
	src Fetcher
	ds  Datasets
	log zerolog.Logger
}

func New(src Fetcher, ds Datasets, logger zerolog.Logger) *Service {
	return &Service{src: src, ds: ds, log: logger.With().Str("component", "pricecheck").Logger()}
}

// SimilarityDB loads and cleans the similarity database.
func (s *Service) SimilarityDB(ctx context.Context) (*SimilarityDB, error) {
	raw, err := s.src.Fetch(ctx, s.ds.DBFileID, s.ds.DBSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity database: %v", model.ErrSourceUnavailable, err)
	}
	db := NewSimilarityDB(raw)
	if db.Empty() {
		return nil, fmt.Errorf("%w: similarity database is empty", model.ErrSourceUnavailable)
	}
	return db, nil
}

// History loads the SJ transaction history.
func (s *Service) History(ctx context.Context) (*fileio.Table, error) {
	tbl, err := s.src.Fetch(ctx, s.ds.SJFileID, s.ds.SJSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: SJ history: %v", model.ErrSourceUnavailable, err)
	}
	if tbl.Empty() {
		return nil, fmt.Errorf("%w: SJ history is empty", model.ErrSourceUnavailable)
	}
	return tbl, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	db, err := s.SimilarityDB(ctx)
	if err != nil {
		return nil, err
	}
	return db.Categories(), nil
}

func (s *Service) Filter(ctx context.Context, req model.FilterRequest) ([]model.SimilarityPair, error) {
	if len(req.Categories) == 0 {
		return []model.SimilarityPair{}, fmt.Errorf("%w: select at least one category", model.ErrPreconditionNotMet)
	}
	db, err := s.SimilarityDB(ctx)
	if err != nil {
		return nil, err
	}
	out, err := db.Filter(req)
	if err != nil {
		return out, err
	}
	s.log.Debug().
		Str("score", string(req.Score)).
		Strs("categories", req.Categories).
		Int("pairs", len(db.Pairs)).
		Int("matched", len(out)).
		Msg("filter applied")
	return out, nil
}

// CheckHistory fuzzy-matches name against the SJ master index and expands the matches through
// the similarity database. An unavailable similarity database only disables the expansion.
func (s *Service) CheckHistory(ctx context.Context, name string) (model.CheckResult, error) {
	res := model.CheckResult{Query: name, Matches: []model.MatchResult{}}
	if strings.TrimSpace(name) == "" {
		return res, fmt.Errorf("%w: item name is empty", model.ErrPreconditionNotMet)
	}
	start := time.Now()

	sj, err := s.History(ctx)
	if err != nil {
		return res, err
	}
	idx, err := BuildMasterIndex(sj)
	if err != nil {
		return res, err
	}

	var graph *PairGraph
	if db, err := s.SimilarityDB(ctx); err != nil {
		s.log.Warn().Err(err).Msg("history check without similarity expansion")
	} else {
		graph = NewPairGraph(db)
	}

	if m := CheckItem(name, idx, graph); len(m) > 0 {
		res.Matches = m
	}
	s.log.Info().
		Str("query", name).
		Int("master", idx.Len()).
		Int("matches", len(res.Matches)).
		Dur("elapsed", time.Since(start)).
		Msg("history check done")
	return res, nil
}

func (s *Service) PairDetails(ctx context.Context, item string) ([]model.PairDetail, error) {
	if strings.TrimSpace(item) == "" {
		return nil, fmt.Errorf("%w: item name is empty", model.ErrPreconditionNotMet)
	}
	db, err := s.SimilarityDB(ctx)
	if err != nil {
		return nil, err
	}
	return db.PairDetails(item)
}

// PurchaseHistory searches the SJ history for item and, optionally, its >=95 similar names.
// Similar names are skipped with a warning when the similarity database is unavailable.
func (s *Service) PurchaseHistory(ctx context.Context, item string, includeSimilar bool) (*fileio.Table, error) {
	if strings.TrimSpace(item) == "" {
		return nil, fmt.Errorf("%w: item name is empty", model.ErrPreconditionNotMet)
	}
	sj, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	terms := []string{item}
	if includeSimilar {
		if db, err := s.SimilarityDB(ctx); err != nil {
			s.log.Warn().Err(err).Msg("purchase history without similar names")
		} else {
			terms = db.HistoryTerms(item, true)
		}
	}
	return PurchaseHistory(sj, terms)
}
