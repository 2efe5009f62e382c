package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/pricecheck/model"
)

func TestBuildMasterIndexPicksMostRecent(t *testing.T) {
	tbl := sjTable(
		sjRow("BAUT M8", "K1", "PCS", 1000.0, "Sipil", day(2024, 1, 1)),
		sjRow("BAUT M8", "K1", "PCS", 1200.0, "Elektronik", day(2024, 3, 1)),
		sjRow("BAUT M8", "K1", "PCS", 9999.0, "Lainnya", nil),
		sjRow("BAUT M8", "K2", "PCS", nil, nil, day(2024, 2, 1)),
		sjRow("BAUT M8", "K2", "PCS", 500.0, "Sipil", day(2023, 12, 1)),
		sjRow("", "K9", "PCS", 1.0, "Sipil", day(2024, 1, 1)),
	)

	idx, err := BuildMasterIndex(tbl)
	require.NoError(t, err)
	require.Equal(t, 2, idx.Len())
	require.Equal(t, []string{"BAUT M8"}, idx.Names())

	k1 := idx.Entries[0]
	require.Equal(t, model.ItemKey{Name: "BAUT M8", Code: "K1", Unit: "PCS"}, k1.ItemKey)
	require.NotNil(t, k1.Price)
	require.Equal(t, 1200.0, *k1.Price)
	require.Equal(t, "Elektronik", *k1.Category)
	require.Equal(t, day(2024, 3, 1), *k1.Latest)
	require.Equal(t, day(2024, 1, 1), *k1.Earliest)

	k2 := idx.Entries[1]
	require.Equal(t, "K2", k2.Code)
	require.Equal(t, 500.0, *k2.Price)
	require.Equal(t, "Sipil", *k2.Category)
	require.Equal(t, day(2024, 2, 1), *k2.Latest)
	require.Equal(t, day(2023, 12, 1), *k2.Earliest)
}

func TestBuildMasterIndexOneEntryPerTriple(t *testing.T) {
	var rows []fileio.Row
	names := []string{"SEMEN", "PASIR", "SEMEN"}
	codes := []string{"S1", "P1", "S2"}
	units := []string{"SAK", "M3", "SAK"}
	want := map[model.ItemKey]struct{}{}
	for i := 0; i < 30; i++ {
		n, c, u := names[i%3], codes[(i/3)%3], units[i%3]
		rows = append(rows, sjRow(n, c, u, float64(i), nil, day(2024, 1, 1+i%28)))
		want[model.ItemKey{Name: n, Code: c, Unit: u}] = struct{}{}
	}

	idx, err := BuildMasterIndex(sjTable(rows...))
	require.NoError(t, err)
	require.Equal(t, len(want), idx.Len())

	seen := map[model.ItemKey]struct{}{}
	for _, e := range idx.Entries {
		_, dup := seen[e.ItemKey]
		require.False(t, dup, "duplicate %v", e.ItemKey)
		seen[e.ItemKey] = struct{}{}
		if e.Latest != nil && e.Earliest != nil {
			require.False(t, e.Latest.Before(*e.Earliest))
		}
	}
	require.Equal(t, want, seen)
}

func TestBuildMasterIndexWithoutTimestamps(t *testing.T) {
	idx, err := BuildMasterIndex(sjTable(sjRow("PIPA", "P1", "BTG", 20.0, "Sipil", nil)))
	require.NoError(t, err)
	require.Equal(t, 1, idx.Len())
	require.Nil(t, idx.Entries[0].Latest)
	require.Nil(t, idx.Entries[0].Earliest)
	require.Equal(t, 20.0, *idx.Entries[0].Price)
}

func TestBuildMasterIndexMissingColumns(t *testing.T) {
	tbl := &fileio.Table{Columns: []string{model.ColItemName, model.ColItemCode}}
	_, err := BuildMasterIndex(tbl)
	require.ErrorIs(t, err, model.ErrSchemaMismatch)
	require.Contains(t, err.Error(), model.ColCreatedOn)
}
