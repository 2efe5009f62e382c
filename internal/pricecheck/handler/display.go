package handler

import (
	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/pricecheck/format"
	"pricecheck-service/internal/pricecheck/model"
	"pricecheck-service/internal/pricecheck/service"
)

type pairDisplay struct {
	PriceA    string `json:"priceA"`
	PriceB    string `json:"priceB"`
	Score     string `json:"score"`
	PriceDiff string `json:"priceDiff"`
}

type PairView struct {
	model.SimilarityPair
	Display pairDisplay `json:"display"`
}

func pairViews(pairs []model.SimilarityPair) []PairView {
	out := make([]PairView, len(pairs))
	for i, p := range pairs {
		out[i] = PairView{SimilarityPair: p, Display: pairDisplay{
			PriceA:    format.Rupiah(p.PriceA),
			PriceB:    format.Rupiah(p.PriceB),
			Score:     format.Score(p.Score),
			PriceDiff: format.Percent(p.PriceDiffPct),
		}}
	}
	return out
}

type matchDisplay struct {
	Score    string `json:"score"`
	Price    string `json:"price"`
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

type MatchView struct {
	model.MatchResult
	Display matchDisplay `json:"display"`
}

func matchViews(ms []model.MatchResult) []MatchView {
	out := make([]MatchView, len(ms))
	for i, m := range ms {
		out[i] = MatchView{MatchResult: m, Display: matchDisplay{
			Score:    format.Score(m.Score),
			Price:    format.Rupiah(m.Price),
			Earliest: format.Date(m.Earliest),
			Latest:   format.Date(m.Latest),
		}}
	}
	return out
}

type detailDisplay struct {
	MainPrice  string `json:"mainPrice"`
	MatchPrice string `json:"matchPrice"`
	Score      string `json:"score"`
	MainHTML   string `json:"mainHtml"`
	MatchHTML  string `json:"matchHtml"`
}

type PairDetailView struct {
	model.PairDetail
	Display detailDisplay `json:"display"`
}

func detailViews(ds []model.PairDetail) []PairDetailView {
	out := make([]PairDetailView, len(ds))
	for i, d := range ds {
		out[i] = PairDetailView{PairDetail: d, Display: detailDisplay{
			MainPrice:  format.Rupiah(d.Main.Price),
			MatchPrice: format.Rupiah(d.Match.Price),
			Score:      format.Score(d.Score),
			MainHTML:   service.RenderHTML(d.Main.Diff),
			MatchHTML:  service.RenderHTML(d.Match.Diff),
		}}
	}
	return out
}

// HistoryRow is one SJ row plus its formatted cells.
type HistoryRow struct {
	Values  fileio.Row        `json:"values"`
	Display map[string]string `json:"display"`
}

func historyRows(tbl *fileio.Table) []HistoryRow {
	out := make([]HistoryRow, len(tbl.Rows))
	for i, r := range tbl.Rows {
		disp := make(map[string]string)
		for _, c := range []string{model.ColAvgPrice, model.ColTotalPrice} {
			if v, ok := r.Float(c); ok {
				disp[c] = format.Rupiah(&v)
			}
		}
		for _, c := range []string{model.ColQty, model.ColQtyApprove, model.ColQtyRecv} {
			if v, ok := r.Int(c); ok {
				disp[c] = format.Count(v)
			}
		}
		if ts, ok := r.Time(model.ColCreatedOn); ok {
			disp[model.ColCreatedOn] = format.ShortDate(ts)
		}
		out[i] = HistoryRow{Values: r, Display: disp}
	}
	return out
}
