package tui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"market-climber/src/analysis"
	"market-climber/src/dashboard"
	"market-climber/src/interfaces"
	"market-climber/src/models"
	"market-climber/src/tui/panels"
	"market-climber/src/tui/styles"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusElevator PanelFocus = 0
	FocusStairs   PanelFocus = 1
)

// Z-score beyond which a mover is starred
const outlierThreshold = 1.5

// elevator animation step
const tickInterval = time.Second

// -----------------------------------------------------------------------------

// StateMsg carries a new dashboard state into the UI.
type StateMsg struct {
	State models.MDashboardState
}

// tickMsg drives the elevator decoration.
type tickMsg time.Time

// -----------------------------------------------------------------------------

// Model is the main TUI application model.
type Model struct {
	// Services
	dashboard interfaces.IDashboard
	updates   <-chan models.MDashboardState

	// Chart inputs
	Location *time.Location
	Now      func() time.Time
	Rand     func() *rand.Rand

	// Panels
	elevatorPanel *panels.ElevatorPanel
	stairsPanel   *panels.StairsPanel
	detailPanel   *panels.DetailPanel

	state      models.MDashboardState
	layout     string
	clock      dashboard.ElevatorClock
	elapsed    time.Duration
	showDetail bool
	timeframe  string

	keys         keyMap
	focusedPanel PanelFocus

	// Window dimensions
	width  int
	height int

	// Status
	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model fed by the publisher's updates.
func NewModel(dash interfaces.IDashboard, publisher *StatePublisher, cfg *models.MConfig) *Model {
	layout, err := dashboard.ParseLayout(cfg.Dashboard.DefaultLayout, dashboard.LayoutStairs)
	if err != nil {
		layout = dashboard.LayoutStairs
	}

	m := &Model{
		dashboard:     dash,
		updates:       publisher.Updates(),
		Location:      time.UTC,
		Now:           time.Now,
		Rand:          analysis.NewRand,
		elevatorPanel: panels.NewElevatorPanel(),
		stairsPanel:   panels.NewStairsPanel(),
		detailPanel:   panels.NewDetailPanel(),
		layout:        layout,
		clock:         dashboard.NewElevatorClock(cfg.Dashboard),
		timeframe:     models.Timeframe1D,
		keys:          newKeyMap(),
		focusedPanel:  FocusStairs,
	}
	m.applyState(dash.State())
	m.syncFocus()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.listenStates(),
		m.tick(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.focusedPanel = (m.focusedPanel + 1) % 2
			m.syncFocus()

		case key.Matches(msg, m.keys.Enter):
			if m.showDetail {
				m.closeDetail()
			} else {
				m.openDetail()
			}

		case key.Matches(msg, m.keys.Refresh):
			m.statusMsg = "Refreshing..."
			cmds = append(cmds, m.refresh())

		case key.Matches(msg, m.keys.Layout):
			m.layout = dashboard.NextLayout(m.layout)
			m.applyState(m.state)
			m.statusMsg = fmt.Sprintf("Layout: %s (%d)", m.layout, dashboard.LayoutDepth(m.layout))

		case key.Matches(msg, m.keys.Timeframe):
			m.timeframe = nextTimeframe(m.timeframe)
			if m.showDetail {
				m.openDetail()
			}

		default:
			m.updateFocusedPanel(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case StateMsg:
		m.applyState(msg.State)
		if msg.State.Error != "" {
			m.statusMsg = "⚠ " + msg.State.Error
		} else if !msg.State.Refreshing && strings.HasPrefix(m.statusMsg, "Refreshing") {
			m.statusMsg = ""
		}
		cmds = append(cmds, m.listenStates())

	case refreshDoneMsg:
		// The publisher usually got there first
		if msg.state.Sequence > m.state.Sequence {
			m.applyState(msg.state)
		}
		if strings.HasPrefix(m.statusMsg, "Refreshing") {
			m.statusMsg = ""
		}

	case tickMsg:
		m.elapsed += tickInterval
		m.elevatorPanel.SetElevator(m.clock.At(m.elapsed))
		cmds = append(cmds, m.tick())
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateFocusedPanel(msg tea.Msg) {
	switch m.focusedPanel {
	case FocusElevator:
		m.elevatorPanel, _ = m.elevatorPanel.Update(msg)
	case FocusStairs:
		m.stairsPanel, _ = m.stairsPanel.Update(msg)
	}
	if m.showDetail {
		m.openDetail()
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Layout:
	// ┌──────────────┬───────────────┐
	// │  Elevator    │    Stairs     │
	// ├──────────────┴───────────────┤
	// │  Detail (optional)           │
	// └──────────────────────────────┘
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth
	topHeight := dashboard.StairCount + 5

	m.elevatorPanel.SetSize(leftWidth, topHeight)
	m.stairsPanel.SetSize(rightWidth, topHeight)

	rows := []string{
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.elevatorPanel.View(), m.stairsPanel.View()),
	}
	if m.showDetail {
		m.detailPanel.SetSize(m.width, 0)
		rows = append(rows, m.detailPanel.View())
	}
	rows = append(rows, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderHeader() string {
	snap := m.state.Snapshot
	switch {
	case snap == nil && m.state.Loading:
		return styles.LabelStyle.Render(" Loading market movers...")
	case snap == nil:
		return styles.ErrorStyle.Render(" No data")
	}

	market := ""
	if m.state.Market.Exchange != "" {
		open := "closed"
		if m.state.Market.Open {
			open = "open"
		}
		market = fmt.Sprintf(" · %s %s", strings.ToUpper(m.state.Market.Exchange), open)
	}

	source := snap.Source
	if snap.UsedFallback() {
		source = styles.ErrorStyle.Render(fmt.Sprintf("fallback (%s)", snap.FallbackReason))
	}
	return styles.LabelStyle.Render(fmt.Sprintf(" Updated %s · %s · layout %s%s", snap.Timestamp, source, m.layout, market))
}

func (m *Model) renderStatusBar() string {
	help := make([]string, 0, len(m.keys.shortHelp()))
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		help = append(help, styles.StatusBarKeyStyle.Render(h.Key)+styles.StatusBarDescStyle.Render(" "+h.Desc))
	}

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}
	return styles.StatusBarStyle.Width(m.width).Render(strings.Join(help, " │ ") + status)
}

// -----------------------------------------------------------------------------

func (m *Model) applyState(st models.MDashboardState) {
	m.state = st
	if st.Snapshot == nil {
		m.elevatorPanel.SetSymbols(nil, nil)
		m.stairsPanel.SetSymbols(nil, nil)
		return
	}

	movers := dashboard.SelectMovers(*st.Snapshot, m.layout)
	m.elevatorPanel.SetSymbols(movers.Losers, analysis.Outliers(st.Snapshot.Losers, outlierThreshold))
	m.stairsPanel.SetSymbols(movers.Gainers, analysis.Outliers(st.Snapshot.Gainers, outlierThreshold))

	if m.showDetail {
		if _, ok := st.Snapshot.Find(m.detailPanel.Symbol()); !ok {
			m.closeDetail()
		}
	}
}

func (m *Model) syncFocus() {
	m.elevatorPanel.SetFocus(m.focusedPanel == FocusElevator)
	m.stairsPanel.SetFocus(m.focusedPanel == FocusStairs)
}

func (m *Model) selected() (models.MSymbol, bool) {
	if m.focusedPanel == FocusElevator {
		return m.elevatorPanel.Selected()
	}
	return m.stairsPanel.Selected()
}

func (m *Model) openDetail() {
	sym, ok := m.selected()
	if !ok {
		return
	}
	points, err := analysis.GenerateChart(sym, m.timeframe, m.Now(), m.Location, m.Rand())
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.detailPanel.Set(analysis.BuildDetail(sym, m.Rand()), m.timeframe, points)
	m.showDetail = true
}

func (m *Model) closeDetail() {
	m.detailPanel.Clear()
	m.showDetail = false
}

// -----------------------------------------------------------------------------

func nextTimeframe(current string) string {
	for i, tf := range models.Timeframes {
		if tf == current {
			return models.Timeframes[(i+1)%len(models.Timeframes)]
		}
	}
	return models.Timeframes[0]
}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

// refreshDoneMsg is sent after a manual refresh returns.
type refreshDoneMsg struct {
	state models.MDashboardState
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{state: m.dashboard.Refresh(context.Background())}
	}
}

func (m *Model) listenStates() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-m.updates
		if !ok {
			return nil
		}
		return StateMsg{State: st}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// -----------------------------------------------------------------------------

// Run starts the terminal UI and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
