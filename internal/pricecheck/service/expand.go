package service

import (
	"sort"

	"pricecheck-service/internal/pricecheck/model"
)

// PairGraph is the undirected "known similar" relation over item names.
type PairGraph struct {
	related map[string][]string
}

// NewPairGraph builds adjacency lists from the pairs in both directions, keeping first-seen
// order. It returns nil when the database has no BARANG_A/BARANG_B columns.
func NewPairGraph(db *SimilarityDB) *PairGraph {
	if !db.HasColumns(model.ColNameA, model.ColNameB) {
		return nil
	}
	g := &PairGraph{related: make(map[string][]string)}
	seen := make(map[[2]string]struct{})
	link := func(from, to string) {
		if from == "" || to == "" || from == to {
			return
		}
		k := [2]string{from, to}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		g.related[from] = append(g.related[from], to)
	}
	for _, p := range db.Pairs {
		link(p.NameA, p.NameB)
		link(p.NameB, p.NameA)
	}
	return g
}

// Related returns names paired with name in either direction.
func (g *PairGraph) Related(name string) []string {
	if g == nil {
		return nil
	}
	return g.related[name]
}

// Expand walks breadth-first from seeds through the pair graph and emits one MatchResult per
// master variant reached, scored against query. graph may be nil (no expansion).
//
// A related name is enqueued once at most and never after one of its variants was emitted.
func Expand(query string, seeds []string, idx *MasterIndex, graph *PairGraph) []model.MatchResult {
	queue := make([]string, 0, len(seeds))
	visited := make(map[string]struct{}, len(seeds))
	for _, s := range seeds {
		if _, dup := visited[s]; dup {
			continue
		}
		visited[s] = struct{}{}
		queue = append(queue, s)
	}

	processed := make(map[model.ItemKey]struct{})
	emittedNames := make(map[string]struct{})
	var results []model.MatchResult

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range idx.Variants(cur) {
			if _, done := processed[e.ItemKey]; done {
				continue
			}
			processed[e.ItemKey] = struct{}{}
			emittedNames[e.Name] = struct{}{}
			results = append(results, model.MatchResult{
				Name:     e.Name,
				Score:    Ratio(query, e.Name),
				Price:    e.Price,
				Code:     e.Code,
				Category: e.Category,
				Unit:     e.Unit,
				Earliest: e.Earliest,
				Latest:   e.Latest,
			})
		}

		for _, rel := range graph.Related(cur) {
			if _, done := emittedNames[rel]; done {
				continue
			}
			if _, seen := visited[rel]; seen {
				continue
			}
			visited[rel] = struct{}{}
			queue = append(queue, rel)
		}
	}

	results = dedupeResults(results)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

func dedupeResults(in []model.MatchResult) []model.MatchResult {
	seen := make(map[model.ItemKey]struct{}, len(in))
	out := in[:0]
	for _, r := range in {
		if _, dup := seen[r.Key()]; dup {
			continue
		}
		seen[r.Key()] = struct{}{}
		out = append(out, r)
	}
	return out
}

// CheckItem runs the whole history check: top fuzzy seeds from the master names, then expansion.
func CheckItem(query string, idx *MasterIndex, graph *PairGraph) []model.MatchResult {
	q := NormalizeQuery(query)
	cands := ExtractTop(q, idx.Names(), DefaultMatchLimit, DefaultScoreCutoff)
	seeds := make([]string, len(cands))
	for i, c := range cands {
		seeds[i] = c.Name
	}
	return Expand(q, seeds, idx, graph)
}
