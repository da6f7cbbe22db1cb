package panels

import (
	"fmt"

	"market-climber/src/models"
	"market-climber/src/tui/styles"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	upKey   = key.NewBinding(key.WithKeys("up", "k"))
	downKey = key.NewBinding(key.WithKeys("down", "j"))
)

// moverList is the selectable symbol list shared by the elevator and stairs panels.
type moverList struct {
	symbols       []models.MSymbol
	outliers      map[string]bool
	selectedIndex int
	focused       bool
	width         int
	height        int
}

// SetSymbols replaces the list, keeping the selection in range.
func (l *moverList) SetSymbols(symbols []models.MSymbol, outliers []models.MSymbol) {
	l.symbols = symbols
	l.outliers = make(map[string]bool, len(outliers))
	for _, o := range outliers {
		l.outliers[o.Symbol] = true
	}
	if l.selectedIndex >= len(symbols) {
		l.selectedIndex = len(symbols) - 1
	}
	if l.selectedIndex < 0 {
		l.selectedIndex = 0
	}
}

// Selected returns the highlighted symbol, if any.
func (l *moverList) Selected() (models.MSymbol, bool) {
	if l.selectedIndex < 0 || l.selectedIndex >= len(l.symbols) {
		return models.MSymbol{}, false
	}
	return l.symbols[l.selectedIndex], true
}

// SelectedIndex returns the highlighted row.
func (l *moverList) SelectedIndex() int {
	return l.selectedIndex
}

// SetFocus sets the focus state of the panel.
func (l *moverList) SetFocus(focused bool) {
	l.focused = focused
}

// Focused reports the focus state.
func (l *moverList) Focused() bool {
	return l.focused
}

// SetSize sets the panel dimensions.
func (l *moverList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l *moverList) update(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !l.focused {
		return
	}
	switch {
	case key.Matches(keyMsg, upKey):
		if l.selectedIndex > 0 {
			l.selectedIndex--
		}
	case key.Matches(keyMsg, downKey):
		if l.selectedIndex < len(l.symbols)-1 {
			l.selectedIndex++
		}
	}
}

// row formats one symbol line
func (l *moverList) row(i int, s models.MSymbol) string {
	marker := " "
	if l.outliers[s.Symbol] {
		marker = styles.OutlierStyle.Render("★")
	}

	line := fmt.Sprintf("%-7s %10s ", s.Symbol, styles.FormatPrice(s.Price))
	style := styles.RowStyle
	if i == l.selectedIndex && l.focused {
		style = styles.SelectedRowStyle
	}
	return style.Render(line) + styles.ChangeStyle(s.ChangePercent).Render(fmt.Sprintf("%8s", styles.FormatPercent(s.ChangePercent))) + " " + marker
}
