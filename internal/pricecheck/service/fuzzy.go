package service

import (
	"sort"
	"strings"
)

const (
	DefaultMatchLimit  = 10
	DefaultScoreCutoff = 50.0
)

// Candidate is a choice scored against a query.
type Candidate struct {
	Name  string
	Score float64
	Index int
}

// NormalizeQuery upper-cases and trims a user-typed item name.
func NormalizeQuery(q string) string {
	return strings.ToUpper(strings.TrimSpace(q))
}

// ExtractTop scores every choice against query and returns at most limit candidates
// scoring >= cutoff, best first; equal scores keep choice order. limit <= 0 means no limit.
func ExtractTop(query string, choices []string, limit int, cutoff float64) []Candidate {
	var out []Candidate
	for i, c := range choices {
		s := Ratio(query, c)
		if s >= cutoff {
			out = append(out, Candidate{Name: c, Score: s, Index: i})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
