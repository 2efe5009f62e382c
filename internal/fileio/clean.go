package fileio

import (
	"strconv"
	"strings"
	"time"

	excelize "github.com/xuri/excelize/v2"

	"pricecheck-service/internal/utils"
)

// CleanRules lists the columns that get typed. Columns absent from the table are skipped.
type CleanRules struct {
	Currency  []string // stripped to [0-9.] then parsed; failure -> nil
	Numeric   []string // parsed as plain numbers; failure -> nil
	Integer   []string // parsed, nil -> 0, rounded half to even, stored as int64
	Timestamp []string // parsed to time.Time; failure -> nil
}

// Clean types the columns named in rules in place and returns t.
func Clean(t *Table, rules CleanRules) *Table {
	if t == nil {
		return t
	}
	for i, c := range t.Columns {
		t.Columns[i] = strings.TrimSpace(c)
	}
	for _, r := range t.Rows {
		for k, v := range r {
			if tk := strings.TrimSpace(k); tk != k {
				delete(r, k)
				r[tk] = v
			}
		}
	}

	apply := func(cols []string, conv func(any) any) {
		for _, col := range cols {
			if !t.HasColumns(col) {
				continue
			}
			for _, r := range t.Rows {
				r[col] = conv(r[col])
			}
		}
	}

	apply(rules.Currency, func(v any) any {
		switch x := v.(type) {
		case float64, int64:
			return x
		case string:
			if f, ok := utils.ParseCurrency(x); ok {
				return f
			}
		}
		return nil
	})
	apply(rules.Numeric, func(v any) any {
		switch x := v.(type) {
		case float64, int64:
			return x
		case string:
			if f, ok := utils.ParseNumeric(x); ok {
				return f
			}
		}
		return nil
	})
	apply(rules.Integer, func(v any) any {
		switch x := v.(type) {
		case int64:
			return x
		case float64:
			return utils.RoundInt(x)
		case string:
			if f, ok := utils.ParseNumeric(x); ok {
				return utils.RoundInt(f)
			}
		}
		return int64(0)
	})
	apply(rules.Timestamp, func(v any) any {
		switch x := v.(type) {
		case time.Time:
			return x
		case float64:
			if ts, ok := fromExcelSerial(x); ok {
				return ts
			}
		case string:
			if ts, ok := ParseTimestamp(x); ok {
				return ts
			}
		}
		return nil
	})
	return t
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02 Jan 2006",
	"2 January 2006",
}

// ParseTimestamp accepts Excel serial numbers, ISO forms and day-first dates.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromExcelSerial(f)
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Excel stores dates as days since 1899-12-30; 2958465 is 9999-12-31.
func fromExcelSerial(f float64) (time.Time, bool) {
	if f <= 0 || f > 2958465 {
		return time.Time{}, false
	}
	ts, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func parseNumeric(s string) (float64, bool) { return utils.ParseNumeric(s) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
