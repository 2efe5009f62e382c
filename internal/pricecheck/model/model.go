package model

import (
	"errors"
	"time"
)

var (
	ErrSourceUnavailable  = errors.New("source unavailable")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrPreconditionNotMet = errors.New("precondition not met")
)

// Column names of the similarity database after cleaning.
const (
	ColNameA       = "BARANG_A"
	ColNameB       = "BARANG_B"
	ColPriceA      = "HARGA_A"
	ColPriceB      = "HARGA_B"
	ColCodeA       = "KODE_A"
	ColCodeB       = "KODE_B"
	ColCategoryA   = "KATEGORI_A"
	ColCategoryB   = "KATEGORI_B"
	ColPairUnit    = "SATUAN"
	ColScore       = "SCORE"
	ColPriceDiffPc = "SELISIH_HARGA_PERSEN"
)

// Column names of the SJ history.
const (
	ColItemName   = "NAMABRG"
	ColItemCode   = "KODEBARANG"
	ColItemUnit   = "SATUAN"
	ColAvgPrice   = "HARGARATA"
	ColTotalPrice = "TOTALHARGA"
	ColCategory   = "KATEGORI"
	ColCreatedOn  = "SJ_CREATED_ON"
	ColQty        = "JUMLAH"
	ColQtyApprove = "JMLDISETUJUI"
	ColQtyRecv    = "JML_DITERIMA"
)

// ItemKey is the identity of an item variant.
type ItemKey struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Unit string `json:"unit"`
}

// MasterEntry is one row of the master index: the most recent price/category of a variant
// and its transaction date range.
type MasterEntry struct {
	ItemKey
	Price    *float64   `json:"price,omitempty"`
	Category *string    `json:"category,omitempty"`
	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`
}

type SimilarityPair struct {
	NameA        string   `json:"nameA"`
	NameB        string   `json:"nameB"`
	PriceA       *float64 `json:"priceA,omitempty"`
	PriceB       *float64 `json:"priceB,omitempty"`
	CodeA        string   `json:"codeA"`
	CodeB        string   `json:"codeB"`
	CategoryA    string   `json:"categoryA"`
	CategoryB    string   `json:"categoryB"`
	Unit         string   `json:"unit"`
	Score        float64  `json:"score"`
	PriceDiffPct float64  `json:"priceDiffPct"`
}

type MatchResult struct {
	Name     string     `json:"name"`
	Score    float64    `json:"score"`
	Price    *float64   `json:"price,omitempty"`
	Code     string     `json:"code"`
	Category *string    `json:"category,omitempty"`
	Unit     string     `json:"unit"`
	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`
}

func (m MatchResult) Key() ItemKey { return ItemKey{Name: m.Name, Code: m.Code, Unit: m.Unit} }

// ScoreThreshold is the score predicate of the filter.
type ScoreThreshold string

const (
	ScoreAtLeast90 ScoreThreshold = "gte90"
	ScoreAtLeast95 ScoreThreshold = "gte95"
	ScoreExact100  ScoreThreshold = "eq100"
)

func (s ScoreThreshold) Valid() bool {
	switch s {
	case ScoreAtLeast90, ScoreAtLeast95, ScoreExact100:
		return true
	}
	return false
}

// Accept reports whether score satisfies the predicate.
func (s ScoreThreshold) Accept(score float64) bool {
	switch s {
	case ScoreAtLeast90:
		return score >= 90
	case ScoreAtLeast95:
		return score >= 95
	case ScoreExact100:
		return score == 100
	}
	return false
}

type FilterRequest struct {
	Score      ScoreThreshold `json:"score"`
	Categories []string       `json:"categories"`
}

// FilterView controls how a stored filter result is shown. Limit 0 = all.
type FilterView struct {
	Limit     int  `json:"limit"`
	Ascending bool `json:"ascending"`
}

// CheckResult is the output of the item-history check.
type CheckResult struct {
	Query   string        `json:"query"`
	Matches []MatchResult `json:"matches"`
}

// PairSide is one side of a pair oriented around a primary item.
type PairSide struct {
	Name     string    `json:"name"`
	Price    *float64  `json:"price,omitempty"`
	Unit     string    `json:"unit"`
	Code     string    `json:"code"`
	Category string    `json:"category"`
	Diff     []Segment `json:"diff"`
}

// PairDetail is a similarity pair oriented so Main is the side containing the primary item.
type PairDetail struct {
	Main         PairSide `json:"main"`
	Match        PairSide `json:"match"`
	Score        float64  `json:"score"`
	EditDistance int      `json:"editDistance"`
}

type SegmentOp string

const (
	SegmentEqual   SegmentOp = "equal"
	SegmentRemoved SegmentOp = "removed"
	SegmentAdded   SegmentOp = "added"
)

// Segment is a span of a diffed string.
type Segment struct {
	Text string    `json:"text"`
	Op   SegmentOp `json:"op"`
}
