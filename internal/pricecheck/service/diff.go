package service

import (
	"html"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"pricecheck-service/internal/pricecheck/model"
)

// HighlightDiff splits a and b into segments: common runs are equal, the rest is
// removed (only in a) or added (only in b). Replacements yield one of each.
func HighlightDiff(a, b string) (left, right []model.Segment) {
	ra, rb := []rune(a), []rune(b)
	sm := difflib.NewMatcher(runeStrings(ra), runeStrings(rb))

	left, right = []model.Segment{}, []model.Segment{}
	for _, op := range sm.GetOpCodes() {
		sa, sb := string(ra[op.I1:op.I2]), string(rb[op.J1:op.J2])
		switch op.Tag {
		case 'e':
			left = appendSegment(left, sa, model.SegmentEqual)
			right = appendSegment(right, sb, model.SegmentEqual)
		case 'r':
			left = appendSegment(left, sa, model.SegmentRemoved)
			right = appendSegment(right, sb, model.SegmentAdded)
		case 'd':
			left = appendSegment(left, sa, model.SegmentRemoved)
		case 'i':
			right = appendSegment(right, sb, model.SegmentAdded)
		}
	}
	return left, right
}

func runeStrings(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// appendSegment merges with the previous segment when the op repeats.
func appendSegment(segs []model.Segment, text string, op model.SegmentOp) []model.Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Op == op {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, model.Segment{Text: text, Op: op})
}

const (
	removedStyle = `style="background-color: #ffcdd2; padding: 2px; border-radius: 3px;"`
	addedStyle   = `style="background-color: #c8e6c9; padding: 2px; border-radius: 3px;"`
)

// RenderHTML renders segments as escaped HTML with styled spans for removed/added runs.
func RenderHTML(segs []model.Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		text := html.EscapeString(s.Text)
		switch s.Op {
		case model.SegmentRemoved:
			sb.WriteString(`<span ` + removedStyle + `>` + text + `</span>`)
		case model.SegmentAdded:
			sb.WriteString(`<span ` + addedStyle + `>` + text + `</span>`)
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}
