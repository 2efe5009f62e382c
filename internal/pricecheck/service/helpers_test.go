package service

import (
	"time"

	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/pricecheck/model"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 9, 0, 0, 0, time.UTC) }

var sjColumns = []string{
	model.ColItemName, model.ColItemCode, model.ColItemUnit, model.ColAvgPrice, model.ColCategory, model.ColCreatedOn,
}

// sjRow builds a history row; nil-able args stay nil when passed nil.
func sjRow(name, code, unit string, price any, category any, ts any) fileio.Row {
	r := fileio.Row{
		model.ColItemName:  nilIfEmpty(name),
		model.ColItemCode:  nilIfEmpty(code),
		model.ColItemUnit:  nilIfEmpty(unit),
		model.ColAvgPrice:  price,
		model.ColCategory:  category,
		model.ColCreatedOn: ts,
	}
	return r
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func sjTable(rows ...fileio.Row) *fileio.Table {
	return &fileio.Table{Columns: append([]string(nil), sjColumns...), Rows: rows}
}

var dbColumns = []string{
	"SCORE", "SELISIH HARGA (%)", "BARANG_A", "HARGA_A", "SATUAN", "KODE_A", "KATEGORI_A",
	"BARANG_B", "HARGA_B", "KODE_B", "KATEGORI_B",
}

type pairRow struct {
	a, b       string
	score      string
	catA, catB string
}

// dbTable builds a raw similarity database the way it arrives from the source (text cells,
// spaced column names).
func dbTable(pairs ...pairRow) *fileio.Table {
	t := &fileio.Table{Columns: append([]string(nil), dbColumns...)}
	for i, p := range pairs {
		t.Rows = append(t.Rows, fileio.Row{
			"SCORE":             p.score,
			"SELISIH HARGA (%)": "1.5",
			"BARANG_A":          p.a,
			"HARGA_A":           "10000",
			"SATUAN":            "PCS",
			"KODE_A":            "A" + string(rune('0'+i)),
			"KATEGORI_A":        nilIfEmpty(p.catA),
			"BARANG_B":          p.b,
			"HARGA_B":           "Rp 12000",
			"KODE_B":            "B" + string(rune('0'+i)),
			"KATEGORI_B":        nilIfEmpty(p.catB),
		})
	}
	return t
}
