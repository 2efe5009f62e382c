// Package format renders prices, scores and dates for display.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// Rupiah formats v as "Rp 1.250.000"; nil gives "".
func Rupiah(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return ""
	}
	return idPrinter.Sprintf("Rp %d", int64(math.Round(*v)))
}

// Count formats an integer quantity with dot grouping.
func Count(n int64) string { return idPrinter.Sprintf("%d", n) }

func Score(s float64) string { return fmt.Sprintf("%.2f", s) }

func Percent(p float64) string { return fmt.Sprintf("%.2f%%", p) }

// Date formats t as dd-mm-yyyy; nil gives "".
func Date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02-01-2006")
}

// ShortDate formats t as dd/mm/yy.
func ShortDate(t time.Time) string { return t.Format("02/01/06") }
