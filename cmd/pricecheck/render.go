package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pricecheck-service/internal/fileio"
	"pricecheck-service/internal/pricecheck/format"
	"pricecheck-service/internal/pricecheck/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#ffcdd2"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#c8e6c9"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// table renders rows as left-aligned columns sized to the widest cell.
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			cell := lipgloss.NewStyle().Width(widths[i]).Render(c)
			if style != nil {
				cell = style.Render(cell)
			}
			parts[i] = cell
		}
		return strings.Join(parts, "  ")
	}

	var sb strings.Builder
	sb.WriteString(line(header, &headerStyle) + "\n")
	for _, r := range rows {
		sb.WriteString(line(r, nil) + "\n")
	}
	return sb.String()
}

func renderCheck(res model.CheckResult) string {
	if len(res.Matches) == 0 {
		return okStyle.Render(fmt.Sprintf("No items similar to %q (above 50%%). This item is most likely unique.", res.Query)) + "\n"
	}
	rows := make([][]string, len(res.Matches))
	for i, m := range res.Matches {
		cat := ""
		if m.Category != nil {
			cat = *m.Category
		}
		rows[i] = []string{
			format.Score(m.Score), m.Name, m.Code, cat, m.Unit,
			format.Rupiah(m.Price), format.Date(m.Earliest), format.Date(m.Latest),
		}
	}
	return titleStyle.Render(fmt.Sprintf("Items similar to %q", res.Query)) + "\n" +
		table([]string{"SCORE", "NAME", "CODE", "CATEGORY", "UNIT", "AVG PRICE", "FIRST", "LAST"}, rows)
}

func renderPairs(all, shown []model.SimilarityPair, showAll bool) string {
	if len(all) == 0 {
		return warnStyle.Render("No pairs match the selected filter.") + "\n"
	}
	rows := make([][]string, len(shown))
	for i, p := range shown {
		rows[i] = []string{
			format.Score(p.Score), p.NameA, format.Rupiah(p.PriceA),
			p.NameB, format.Rupiah(p.PriceB), format.Percent(p.PriceDiffPct),
		}
	}
	out := titleStyle.Render(fmt.Sprintf("Showing %d of %d pairs", len(shown), len(all))) + "\n" +
		table([]string{"SCORE", "ITEM A", "PRICE A", "ITEM B", "PRICE B", "DIFF"}, rows)
	if showAll {
		out += warnStyle.Render("Showing every pair may be slow when there are thousands.") + "\n"
	}
	return out
}

func renderSegments(segs []model.Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		switch s.Op {
		case model.SegmentRemoved:
			sb.WriteString(removedStyle.Render(s.Text))
		case model.SegmentAdded:
			sb.WriteString(addedStyle.Render(s.Text))
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func renderSide(label string, s model.PairSide) string {
	return headerStyle.Render(label) + "\n" +
		renderSegments(s.Diff) + "\n" +
		mutedStyle.Render(fmt.Sprintf("%s | %s | %s | %s", format.Rupiah(s.Price), s.Unit, s.Code, s.Category))
}

func renderDetails(item string, details []model.PairDetail) string {
	if len(details) == 0 {
		return warnStyle.Render("No similar pairs found in the similarity database.") + "\n"
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Pairs for %q", item)) + "\n")
	for _, d := range details {
		body := lipgloss.JoinHorizontal(lipgloss.Top,
			boxStyle.Render(renderSide("Main item", d.Main)),
			boxStyle.Render(renderSide("Similar item", d.Match)),
		)
		sb.WriteString(body + "\n")
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("score %s, edit distance %d", format.Score(d.Score), d.EditDistance)) + "\n")
	}
	return sb.String()
}

func renderHistory(tbl *fileio.Table) string {
	if tbl.Empty() {
		return warnStyle.Render("No matching purchase history in the SJ data.") + "\n"
	}
	rows := make([][]string, len(tbl.Rows))
	for i, r := range tbl.Rows {
		cells := make([]string, len(tbl.Columns))
		for j, c := range tbl.Columns {
			cells[j] = historyCell(r, c)
		}
		rows[i] = cells
	}
	return titleStyle.Render(fmt.Sprintf("%d matching purchase records", tbl.Len())) + "\n" +
		table(tbl.Columns, rows)
}

func historyCell(r fileio.Row, col string) string {
	switch col {
	case model.ColAvgPrice, model.ColTotalPrice:
		if v, ok := r.Float(col); ok {
			return format.Rupiah(&v)
		}
	case model.ColQty, model.ColQtyApprove, model.ColQtyRecv:
		if v, ok := r.Int(col); ok {
			return format.Count(v)
		}
	case model.ColCreatedOn:
		if ts, ok := r.Time(col); ok {
			return format.ShortDate(ts)
		}
	}
	return r.Text(col)
}
