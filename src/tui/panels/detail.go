package panels

import (
	"fmt"
	"strings"

	"market-climber/src/analysis"
	"market-climber/src/models"
	"market-climber/src/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// DetailPanel shows key stats and the synthetic chart of one symbol.
type DetailPanel struct {
	detail    *models.MSymbolDetail
	timeframe string
	points    []models.MChartPoint
	width     int
	height    int
}

// NewDetailPanel creates an empty detail panel.
func NewDetailPanel() *DetailPanel {
	return &DetailPanel{timeframe: models.Timeframe1D}
}

// Set shows a new symbol.
func (p *DetailPanel) Set(detail models.MSymbolDetail, timeframe string, points []models.MChartPoint) {
	p.detail = &detail
	p.timeframe = timeframe
	p.points = points
}

// Clear hides the current symbol.
func (p *DetailPanel) Clear() {
	p.detail = nil
	p.points = nil
}

// Symbol returns the symbol on display, or "".
func (p *DetailPanel) Symbol() string {
	if p.detail == nil {
		return ""
	}
	return p.detail.Symbol
}

// Timeframe returns the chart timeframe on display.
func (p *DetailPanel) Timeframe() string {
	return p.timeframe
}

// SetSize sets the panel dimensions.
func (p *DetailPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the panel.
func (p *DetailPanel) View() string {
	if p.detail == nil {
		return ""
	}
	d := p.detail

	var content strings.Builder
	content.WriteString(fmt.Sprintf("%s  %s  ", d.Symbol, styles.FormatPrice(d.Price)))
	content.WriteString(styles.ChangeStyle(d.Change).Render(fmt.Sprintf("%+.2f (%s)", d.Change, styles.FormatPercent(d.ChangePercent))))
	content.WriteString("\n\n")

	stats := [][2]string{
		{"Open", styles.FormatPrice(d.Open)},
		{"Prev close", styles.FormatPrice(d.PreviousClose)},
		{"Day range", fmt.Sprintf("%s - %s", styles.FormatPrice(d.DayLow), styles.FormatPrice(d.DayHigh))},
		{"52w range", fmt.Sprintf("%s - %s", styles.FormatPrice(d.Week52Low), styles.FormatPrice(d.Week52High))},
		{"Volume", fmt.Sprintf("%d", d.Volume)},
		{"Market cap", fmt.Sprintf("$%d", d.MarketCap)},
		{"P/E", fmt.Sprintf("%.2f", d.PE)},
		{"Volatility", fmt.Sprintf("%.0f%%", d.VolatilityPercent)},
	}
	for _, s := range stats {
		content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-11s", s[0])))
		content.WriteString(s[1])
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(styles.LabelStyle.Render(p.timeframe + " "))
	content.WriteString(styles.ChangeStyle(d.Change).Render(Sparkline(p.points)))
	if len(p.points) > 0 {
		r := analysis.ChartRange(p.points)
		content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("  %s - %s", styles.FormatPrice(r.Low), styles.FormatPrice(r.High))))
	}

	title := styles.RenderTitle("🔎 "+d.Symbol+" ("+d.Kind+")", true)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return styles.Panel(false).Width(p.width - 2).Render(panel)
}

// Sparkline renders chart prices as block characters scaled to their range.
func Sparkline(points []models.MChartPoint) string {
	if len(points) == 0 {
		return ""
	}
	r := analysis.ChartRange(points)
	span := r.High - r.Low

	out := make([]rune, len(points))
	for i, pt := range points {
		idx := len(sparkRunes) / 2
		if span > 0 {
			idx = int((pt.Price - r.Low) / span * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
