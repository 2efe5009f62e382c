package service

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/pricecheck/model"
)

// DetailColumns must all be present for the side-by-side view.
var DetailColumns = []string{
	model.ColNameA, model.ColNameB, model.ColPriceA, model.ColPriceB, model.ColPairUnit,
	model.ColCodeA, model.ColCodeB, model.ColCategoryA, model.ColCategoryB,
}

// SimilarScoreForHistory is the minimum pair score whose names join a history search.
const SimilarScoreForHistory = 95.0

// pairsMentioning returns pairs where either name contains item, ignoring case.
func (db *SimilarityDB) pairsMentioning(item string) []model.SimilarityPair {
	needle := strings.ToUpper(item)
	var out []model.SimilarityPair
	for _, p := range db.Pairs {
		if strings.Contains(strings.ToUpper(p.NameA), needle) || strings.Contains(strings.ToUpper(p.NameB), needle) {
			out = append(out, p)
		}
	}
	return out
}

// PairDetails orients every pair mentioning item so that Main is the side containing it,
// and attaches diff segments and the edit distance between the two names.
func (db *SimilarityDB) PairDetails(item string) ([]model.PairDetail, error) {
	if strings.TrimSpace(item) == "" {
		return nil, fmt.Errorf("%w: item name is empty", model.ErrPreconditionNotMet)
	}
	if !db.HasColumns(DetailColumns...) {
		return []model.PairDetail{}, nil
	}
	needle := strings.ToUpper(item)
	out := []model.PairDetail{}
	for _, p := range db.pairsMentioning(item) {
		main := model.PairSide{Name: p.NameA, Price: p.PriceA, Unit: p.Unit, Code: p.CodeA, Category: p.CategoryA}
		match := model.PairSide{Name: p.NameB, Price: p.PriceB, Unit: p.Unit, Code: p.CodeB, Category: p.CategoryB}
		if !strings.Contains(strings.ToUpper(p.NameA), needle) {
			main, match = match, main
		}
		main.Diff, match.Diff = HighlightDiff(main.Name, match.Name)
		out = append(out, model.PairDetail{
			Main:         main,
			Match:        match,
			Score:        p.Score,
			EditDistance: levenshtein.ComputeDistance(main.Name, match.Name),
		})
	}
	return out, nil
}

// HistoryTerms returns item plus, when includeSimilar is set, both names of every pair
// mentioning item with a score of at least SimilarScoreForHistory.
func (db *SimilarityDB) HistoryTerms(item string, includeSimilar bool) []string {
	terms := []string{item}
	if !includeSimilar || !db.HasColumns(model.ColNameA, model.ColNameB, model.ColScore) {
		return terms
	}
	seen := map[string]struct{}{item: {}}
	for _, p := range db.pairsMentioning(item) {
		if p.Score < SimilarScoreForHistory {
			continue
		}
		for _, n := range []string{p.NameA, p.NameB} {
			if _, dup := seen[n]; dup || n == "" {
				continue
			}
			seen[n] = struct{}{}
			terms = append(terms, n)
		}
	}
	return terms
}

// PurchaseHistory returns SJ rows whose item name contains any term, ignoring case.
func PurchaseHistory(sj *fileio.Table, terms []string) (*fileio.Table, error) {
	if !sj.HasColumns(model.ColItemName) {
		return nil, fmt.Errorf("%w: SJ history lacks column %s", model.ErrSchemaMismatch, model.ColItemName)
	}
	return sj.Filter(func(r fileio.Row) bool {
		for _, t := range terms {
			if r.ContainsFold(model.ColItemName, t) {
				return true
			}
		}
		return false
	}), nil
}
