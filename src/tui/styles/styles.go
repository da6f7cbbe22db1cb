package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple
	AccentColor  = lipgloss.Color("#F59E0B") // Amber

	GainColor    = lipgloss.Color("#10B981") // Green
	LossColor    = lipgloss.Color("#EF4444") // Red
	NeutralColor = lipgloss.Color("#6B7280") // Gray

	BackgroundColor  = lipgloss.Color("#1F2937")
	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")

	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))

	EmptyStepStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)
)

// Text styles
var (
	GainStyle = lipgloss.NewStyle().
			Foreground(GainColor)

	LossStyle = lipgloss.NewStyle().
			Foreground(LossColor)

	FlatStyle = lipgloss.NewStyle().
			Foreground(NeutralColor)

	// Symbols far from the rest of their list
	OutlierStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	// Elevator floor display
	FloorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			Background(lipgloss.Color("#020617")).
			Padding(0, 1)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// RenderTitle renders a panel title bar
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// Panel picks the border style for the focus state
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedPanelStyle
	}
	return PanelStyle
}

// ChangeStyle colors a value by its sign
func ChangeStyle(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return GainStyle
	case v < 0:
		return LossStyle
	default:
		return FlatStyle
	}
}

// FormatPercent renders a signed percentage, e.g. "+4.21%"
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatPrice renders a dollar price
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
