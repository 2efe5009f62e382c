package service

import (
	"sort"
	"strings"

	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/pricecheck/model"
)

// SourceCleanRules is applied to every fetched sheet before it is cached.
var SourceCleanRules = fileio.CleanRules{
	Currency:  []string{model.ColAvgPrice, model.ColTotalPrice},
	Integer:   []string{model.ColQty, model.ColQtyApprove, model.ColQtyRecv},
	Timestamp: []string{model.ColCreatedOn},
}

var dbCleanRules = fileio.CleanRules{
	Currency: []string{model.ColPriceA, model.ColPriceB},
	Numeric:  []string{model.ColScore, model.ColPriceDiffPc},
}

var dbColumnNames = strings.NewReplacer(" (%)", "_PERSEN", " ", "_")

// SimilarityDB is the cleaned similarity database plus its typed pairs.
type SimilarityDB struct {
	Table *fileio.Table
	Pairs []model.SimilarityPair
}

// NewSimilarityDB normalizes column names ("SELISIH HARGA (%)" -> "SELISIH_HARGA_PERSEN"),
// types SCORE and the price columns and drops rows without SCORE or price difference.
// raw is not modified.
func NewSimilarityDB(raw *fileio.Table) *SimilarityDB {
	tbl := raw.Clone()
	tbl.RenameColumns(func(c string) string { return dbColumnNames.Replace(strings.TrimSpace(c)) })
	fileio.Clean(tbl, dbCleanRules)

	var required []string
	for _, c := range []string{model.ColScore, model.ColPriceDiffPc} {
		if tbl.HasColumns(c) {
			required = append(required, c)
		}
	}
	if len(required) > 0 {
		tbl = tbl.Filter(func(r fileio.Row) bool {
			for _, c := range required {
				if _, ok := r.Float(c); !ok {
					return false
				}
			}
			return true
		})
	}

	db := &SimilarityDB{Table: tbl, Pairs: make([]model.SimilarityPair, 0, len(tbl.Rows))}
	for _, r := range tbl.Rows {
		db.Pairs = append(db.Pairs, pairFromRow(r))
	}
	return db
}

func pairFromRow(r fileio.Row) model.SimilarityPair {
	p := model.SimilarityPair{
		NameA:     r.Text(model.ColNameA),
		NameB:     r.Text(model.ColNameB),
		CodeA:     r.Text(model.ColCodeA),
		CodeB:     r.Text(model.ColCodeB),
		CategoryA: r.Text(model.ColCategoryA),
		CategoryB: r.Text(model.ColCategoryB),
		Unit:      r.Text(model.ColPairUnit),
	}
	if v, ok := r.Float(model.ColPriceA); ok {
		p.PriceA = &v
	}
	if v, ok := r.Float(model.ColPriceB); ok {
		p.PriceB = &v
	}
	p.Score, _ = r.Float(model.ColScore)
	p.PriceDiffPct, _ = r.Float(model.ColPriceDiffPc)
	return p
}

func (db *SimilarityDB) Empty() bool { return db == nil || db.Table.Empty() }

// HasColumns is the schema capability check used before every feature.
func (db *SimilarityDB) HasColumns(names ...string) bool {
	return db != nil && db.Table.HasColumns(names...)
}

// Categories returns the sorted distinct non-empty categories of both sides.
func (db *SimilarityDB) Categories() []string {
	if !db.HasColumns(model.ColCategoryA, model.ColCategoryB) {
		return []string{}
	}
	seen := make(map[string]struct{})
	for _, p := range db.Pairs {
		for _, c := range []string{p.CategoryA, p.CategoryB} {
			if c != "" {
				seen[c] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
