package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"pricecheck-service/internal/pricecheck/model"
)

func names(rs []model.MatchResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestCheckItemScenarioBaut(t *testing.T) {
	idx, err := BuildMasterIndex(sjTable(
		sjRow("BAUT M8", "K1", "PCS", 1000.0, "Sipil", day(2024, 1, 1)),
		sjRow("BAUT M8X10", "K2", "PCS", 1100.0, "Sipil", day(2024, 1, 2)),
		sjRow("MUR M8", "K3", "PCS", 300.0, "Sipil", day(2024, 1, 3)),
		sjRow("CAT TEMBOK PUTIH", "K4", "KLG", 90000.0, "Sipil", day(2024, 1, 4)),
	))
	require.NoError(t, err)

	got := CheckItem("baut m8", idx, nil)
	require.Equal(t, []string{"BAUT M8", "BAUT M8X10", "MUR M8"}, names(got))
	require.Equal(t, 100.0, got[0].Score)
	require.Greater(t, got[1].Score, got[2].Score)
	require.GreaterOrEqual(t, got[2].Score, DefaultScoreCutoff)
	require.Equal(t, "K1", got[0].Code)
	require.Equal(t, 1000.0, *got[0].Price)
}

func TestExpandTwoHop(t *testing.T) {
	idx, err := BuildMasterIndex(sjTable(
		sjRow("X", "C1", "PCS", nil, nil, day(2024, 1, 1)),
		sjRow("Y", "C2", "PCS", nil, nil, day(2024, 1, 1)),
		sjRow("Z", "C3", "PCS", nil, nil, day(2024, 1, 1)),
		sjRow("Z", "C3", "BOX", nil, nil, day(2024, 1, 1)),
		sjRow("Q", "C4", "PCS", nil, nil, day(2024, 1, 1)),
	))
	require.NoError(t, err)
	db := NewSimilarityDB(dbTable(
		pairRow{a: "X", b: "Y", score: "96", catA: "Sipil", catB: "Sipil"},
		pairRow{a: "Y", b: "Z", score: "92", catA: "Sipil", catB: "Sipil"},
	))
	graph := NewPairGraph(db)
	require.NotNil(t, graph)

	got := Expand("X", []string{"X"}, idx, graph)
	require.ElementsMatch(t, []string{"X", "Y", "Z", "Z"}, names(got))
	require.Equal(t, "X", got[0].Name)

	// idempotent
	again := Expand("X", []string{"X"}, idx, graph)
	require.Equal(t, got, again)
}

func TestExpandUniqueAndTerminatesOnUnknownNames(t *testing.T) {
	idx, err := BuildMasterIndex(sjTable(
		sjRow("A", "1", "PCS", nil, nil, day(2024, 1, 1)),
		sjRow("B", "2", "PCS", nil, nil, day(2024, 1, 1)),
	))
	require.NoError(t, err)
	db := NewSimilarityDB(dbTable(
		pairRow{a: "A", b: "GHOST", score: "95"},
		pairRow{a: "B", b: "GHOST", score: "95"},
		pairRow{a: "GHOST", b: "A", score: "95"},
		pairRow{a: "GHOST", b: "B", score: "95"},
		pairRow{a: "A", b: "A", score: "100"},
	))

	got := Expand("A", []string{"A", "A"}, idx, NewPairGraph(db))
	keys := map[model.ItemKey]int{}
	for _, r := range got {
		keys[r.Key()]++
	}
	require.Equal(t, map[model.ItemKey]int{
		{Name: "A", Code: "1", Unit: "PCS"}: 1,
		{Name: "B", Code: "2", Unit: "PCS"}: 1,
	}, keys)
	require.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Score > got[j].Score }))
}

func TestNewPairGraphNeedsNameColumns(t *testing.T) {
	db := NewSimilarityDB(dbTable(pairRow{a: "A", b: "B", score: "99"}))
	db.Table.Columns = []string{"SCORE"}
	require.Nil(t, NewPairGraph(db))

	var g *PairGraph
	require.Empty(t, g.Related("A"))
}
