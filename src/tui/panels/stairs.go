package panels

import (
	"fmt"
	"strings"

	"market-climber/src/dashboard"
	"market-climber/src/models"
	"market-climber/src/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StairsPanel shows the gainers climbing the staircase, first gainer on top.
type StairsPanel struct {
	moverList
}

// NewStairsPanel creates a new stairs panel.
func NewStairsPanel() *StairsPanel {
	return &StairsPanel{}
}

// Update handles messages for the panel.
func (p *StairsPanel) Update(msg tea.Msg) (*StairsPanel, tea.Cmd) {
	p.update(msg)
	return p, nil
}

// View renders the panel.
func (p *StairsPanel) View() string {
	var content strings.Builder

	steps := dashboard.StairSteps(p.symbols, dashboard.StairCount)
	// Top step first; the selection index follows gainer order
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		indent := strings.Repeat(" ", step.Level-1)
		if step.Symbol == nil {
			content.WriteString(styles.EmptyStepStyle.Render(fmt.Sprintf("%s▁▁ %2d", indent, step.Level)))
		} else {
			rank := len(steps) - step.Level
			content.WriteString(indent + p.row(rank, *step.Symbol))
		}
		if i > 0 {
			content.WriteString("\n")
		}
	}

	title := styles.RenderTitle("📈 Gainers Stairs", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// Steps exposes the staircase for the current gainers.
func (p *StairsPanel) Steps() []dashboard.Stair {
	return dashboard.StairSteps(p.symbols, dashboard.StairCount)
}

// Gainers returns the symbols on the stairs in gainer order.
func (p *StairsPanel) Gainers() []models.MSymbol {
	return p.symbols
}
