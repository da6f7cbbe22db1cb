package panels

import (
	"fmt"
	"strings"

	"market-climber/src/dashboard"
	"market-climber/src/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ElevatorPanel shows the losers riding down in the elevator car.
type ElevatorPanel struct {
	moverList
	state dashboard.ElevatorState
}

// NewElevatorPanel creates a new elevator panel.
func NewElevatorPanel() *ElevatorPanel {
	return &ElevatorPanel{state: dashboard.ElevatorState{Floor: dashboard.StairCount}}
}

// SetElevator updates the floor indicator and doors.
func (p *ElevatorPanel) SetElevator(state dashboard.ElevatorState) {
	p.state = state
}

// Update handles messages for the panel.
func (p *ElevatorPanel) Update(msg tea.Msg) (*ElevatorPanel, tea.Cmd) {
	p.update(msg)
	return p, nil
}

// View renders the panel.
func (p *ElevatorPanel) View() string {
	var content strings.Builder

	doors := "▐▌"
	if p.state.DoorsOpen {
		doors = "▌  ▐"
	}
	content.WriteString(styles.FloorStyle.Render(fmt.Sprintf("%2d", p.state.Floor)))
	content.WriteString(" ")
	content.WriteString(styles.LabelStyle.Render(doors))
	content.WriteString("\n\n")

	if len(p.symbols) == 0 {
		content.WriteString(styles.EmptyStepStyle.Render("waiting for losers..."))
	}
	for i, s := range p.symbols {
		content.WriteString(p.row(i, s))
		if i < len(p.symbols)-1 {
			content.WriteString("\n")
		}
	}

	title := styles.RenderTitle("🛗 Losers Elevator", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}
