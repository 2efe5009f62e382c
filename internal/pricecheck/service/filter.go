package service

import (
	"fmt"
	"sort"

	"pricecheck-service/internal/pricecheck/model"
)

// Filter keeps pairs whose score passes req.Score and whose categories fall in req.Categories.
// With a single category both sides must equal it; with several each side must be in the set.
// The result is sorted by score, highest first.
func (db *SimilarityDB) Filter(req model.FilterRequest) ([]model.SimilarityPair, error) {
	if !req.Score.Valid() {
		return []model.SimilarityPair{}, fmt.Errorf("%w: unknown score option %q", model.ErrPreconditionNotMet, req.Score)
	}
	if len(req.Categories) == 0 {
		return []model.SimilarityPair{}, fmt.Errorf("%w: select at least one category", model.ErrPreconditionNotMet)
	}
	if !db.HasColumns(model.ColScore, model.ColCategoryA, model.ColCategoryB) {
		return []model.SimilarityPair{}, fmt.Errorf("%w: similarity database lacks %s/%s/%s",
			model.ErrSchemaMismatch, model.ColScore, model.ColCategoryA, model.ColCategoryB)
	}

	var inCategory func(p model.SimilarityPair) bool
	if len(req.Categories) == 1 {
		only := req.Categories[0]
		inCategory = func(p model.SimilarityPair) bool { return p.CategoryA == only && p.CategoryB == only }
	} else {
		set := make(map[string]struct{}, len(req.Categories))
		for _, c := range req.Categories {
			set[c] = struct{}{}
		}
		inCategory = func(p model.SimilarityPair) bool {
			_, okA := set[p.CategoryA]
			_, okB := set[p.CategoryB]
			return okA && okB
		}
	}

	out := make([]model.SimilarityPair, 0)
	for _, p := range db.Pairs {
		if req.Score.Accept(p.Score) && inCategory(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// ApplyView orders a filter result by score and cuts it to view.Limit (0 = all).
// pairs is not modified.
func ApplyView(pairs []model.SimilarityPair, view model.FilterView) []model.SimilarityPair {
	out := make([]model.SimilarityPair, len(pairs))
	copy(out, pairs)
	sort.SliceStable(out, func(i, j int) bool {
		if view.Ascending {
			return out[i].Score < out[j].Score
		}
		return out[i].Score > out[j].Score
	})
	if view.Limit > 0 && len(out) > view.Limit {
		out = out[:view.Limit]
	}
	return out
}
