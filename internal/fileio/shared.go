package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrSheetNotFound is returned when a named sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ReadOptions: Sheet is a sheet name ("" = first sheet, ignored for CSV);
// HeaderRow is the 1-based header line.
type ReadOptions struct {
	Sheet     string
	HeaderRow int
}

// ReadAny picks a parser by file extension and returns the sheet as a Table of text cells.
// Empty cells are nil.
func ReadAny(r io.Reader, filename string, opt ReadOptions) (*Table, error) {
	if opt.HeaderRow <= 0 {
		opt.HeaderRow = 1
	}
	var (
		rows [][]string
		err  error
	)
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r, opt.Sheet)
	case ".xls":
		rows, err = readXLS(r, opt.Sheet, opt.HeaderRow)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	h := pickHeader(rows, opt.HeaderRow)
	return rowsToTable(rows, h, opt.HeaderRow), nil
}

// pickHeader takes the header row, trims names, names blanks "Column N"
// and suffixes duplicates with ".1", ".2", ...
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		if n, dup := seen[v]; dup {
			seen[v] = n + 1
			v = fmt.Sprintf("%s.%d", v, n+1)
		} else {
			seen[v] = 0
		}
		out[i] = v
	}
	return out
}

// rowsToTable converts the rows below the header into a Table, skipping fully empty rows.
func rowsToTable(rows [][]string, headers []string, headerRow int) *Table {
	t := &Table{Columns: headers}
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		row := make(Row, len(headers))
		empty := true
		for c, name := range headers {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			if strings.TrimSpace(v) == "" {
				row[name] = nil
				continue
			}
			empty = false
			row[name] = v
		}
		if !empty {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}
