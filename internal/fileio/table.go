package fileio

import (
	"strings"
	"time"
)

// Table is a parsed sheet: ordered column names and rows keyed by column.
// Cell values are nil, string, float64, int64 or time.Time.
type Table struct {
	Columns []string
	Rows    []Row
}

type Row map[string]any

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) Empty() bool { return t.Len() == 0 }

// HasColumns reports whether every name is a column of t.
func (t *Table) HasColumns(names ...string) bool {
	if t == nil {
		return false
	}
	have := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		have[c] = struct{}{}
	}
	for _, n := range names {
		if _, ok := have[n]; !ok {
			return false
		}
	}
	return true
}

// MissingColumns returns the subset of names that t lacks, in the given order.
func (t *Table) MissingColumns(names ...string) []string {
	var out []string
	for _, n := range names {
		if !t.HasColumns(n) {
			out = append(out, n)
		}
	}
	return out
}

// Clone copies headers and rows so the copy can be modified without touching t.
func (t *Table) Clone() *Table {
	if t == nil {
		return &Table{}
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows[i] = nr
	}
	return out
}

// RenameColumns rewrites every column name through fn, in headers and rows.
func (t *Table) RenameColumns(fn func(string) string) {
	mapping := make(map[string]string, len(t.Columns))
	for i, c := range t.Columns {
		nc := fn(c)
		mapping[c] = nc
		t.Columns[i] = nc
	}
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			if nk, ok := mapping[k]; ok {
				k = nk
			}
			nr[k] = v
		}
		t.Rows[i] = nr
	}
}

// Filter returns a new table sharing columns with t that keeps rows where keep is true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// String returns the cell as text. Numbers are formatted without trailing zeros.
func (r Row) String(col string) (string, bool) {
	switch v := r[col].(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return formatFloat(v), true
	case int64:
		return formatFloat(float64(v)), true
	case time.Time:
		return v.Format(time.DateTime), true
	default:
		return "", false
	}
}

// Text is String with "" for absent cells.
func (r Row) Text(col string) string {
	s, _ := r.String(col)
	return s
}

func (r Row) Float(col string) (float64, bool) {
	switch v := r[col].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case string:
		return parseNumeric(v)
	default:
		return 0, false
	}
}

func (r Row) Int(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func (r Row) Time(col string) (time.Time, bool) {
	v, ok := r[col].(time.Time)
	return v, ok
}

// ContainsFold reports whether the text cell contains sub, ignoring case.
func (r Row) ContainsFold(col, sub string) bool {
	s, ok := r[col].(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
