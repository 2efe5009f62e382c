package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricecheck-service/internal/pricecheck/model"
)

func TestHighlightDiff(t *testing.T) {
	left, right := HighlightDiff("BAUT M8", "BAUT M8X10")
	require.Equal(t, []model.Segment{{Text: "BAUT M8", Op: model.SegmentEqual}}, left)
	require.Equal(t, []model.Segment{
		{Text: "BAUT M8", Op: model.SegmentEqual},
		{Text: "X10", Op: model.SegmentAdded},
	}, right)

	left, right = HighlightDiff("KABEL NYM", "KABEL NYY")
	require.Equal(t, model.SegmentRemoved, left[len(left)-1].Op)
	require.Equal(t, "M", left[len(left)-1].Text)
	require.Equal(t, "Y", right[len(right)-1].Text)
	require.Equal(t, model.SegmentAdded, right[len(right)-1].Op)

	left, right = HighlightDiff("", "")
	require.Empty(t, left)
	require.Empty(t, right)
}

func TestRenderHTML(t *testing.T) {
	html := RenderHTML([]model.Segment{
		{Text: "A<B", Op: model.SegmentEqual},
		{Text: "x", Op: model.SegmentRemoved},
		{Text: "y", Op: model.SegmentAdded},
	})
	require.Contains(t, html, "A&lt;B")
	require.Contains(t, html, `#ffcdd2; padding: 2px; border-radius: 3px;">x</span>`)
	require.Contains(t, html, `#c8e6c9; padding: 2px; border-radius: 3px;">y</span>`)
}

func TestPairDetailsOrientation(t *testing.T) {
	db := NewSimilarityDB(dbTable(
		pairRow{a: "MUR M8", b: "BAUT M8", score: "92", catA: "Sipil", catB: "Teknik"},
		pairRow{a: "BAUT M10", b: "BAUT M12", score: "95", catA: "Sipil", catB: "Sipil"},
		pairRow{a: "SEMEN", b: "PASIR", score: "90", catA: "Sipil", catB: "Sipil"},
	))

	out, err := db.PairDetails("baut")
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.Equal(t, "BAUT M8", out[0].Main.Name)
	require.Equal(t, "Teknik", out[0].Main.Category)
	require.Equal(t, "B0", out[0].Main.Code)
	require.Equal(t, 12000.0, *out[0].Main.Price)
	require.Equal(t, "MUR M8", out[0].Match.Name)
	require.Greater(t, out[0].EditDistance, 0)
	require.NotEmpty(t, out[0].Main.Diff)

	require.Equal(t, "BAUT M10", out[1].Main.Name)
	require.Equal(t, 1, out[1].EditDistance)

	_, err = db.PairDetails("  ")
	require.ErrorIs(t, err, model.ErrPreconditionNotMet)
}

func TestHistoryTermsAndPurchaseHistory(t *testing.T) {
	db := NewSimilarityDB(dbTable(
		pairRow{a: "BAUT M8", b: "BAUT M-8", score: "97"},
		pairRow{a: "BAUT M8", b: "MUR M8", score: "91"},
	))
	require.Equal(t, []string{"BAUT M8"}, db.HistoryTerms("BAUT M8", false))
	require.Equal(t, []string{"BAUT M8", "BAUT M-8"}, db.HistoryTerms("BAUT M8", true))

	sj := sjTable(
		sjRow("baut m8 galvanis", "K1", "PCS", 1.0, nil, day(2024, 1, 1)),
		sjRow("BAUT M-8", "K2", "PCS", 1.0, nil, day(2024, 1, 1)),
		sjRow("MUR M8", "K3", "PCS", 1.0, nil, day(2024, 1, 1)),
		sjRow("", "K4", "PCS", 1.0, nil, day(2024, 1, 1)),
	)
	got, err := PurchaseHistory(sj, db.HistoryTerms("BAUT M8", true))
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	got, err = PurchaseHistory(sj, []string{"BAUT M8"})
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	sj.Columns = []string{model.ColItemCode}
	_, err = PurchaseHistory(sj, []string{"x"})
	require.ErrorIs(t, err, model.ErrSchemaMismatch)
}
