package styles

import "github.com/charmbracelet/lipgloss"

// Palette used across the terminal UI
const (
	Background = "#1E1F29"
	Foreground = "#E8E6DF"

	Red    = "#F2637E"
	Amber  = "#F4B860"
	Green  = "#8BD49C"
	Teal   = "#5EC4B6"
	Violet = "#B39DF3"

	Muted  = "#6C6F7E"
	Border = "#44475A"
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Amber))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Violet))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Amber)).Bold(true)
	SpinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Teal))
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted))
	LabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted))
	ValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))

	TableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border))
)

// PageState renders a page status label in its color
func PageState(label string) string {
	switch label {
	case "up to date":
		return SuccessStyle.Render(label)
	case "stale", "new":
		return HighlightStyle.Render(label)
	case "draft":
		return DimStyle.Render(label)
	case "error":
		return ErrorStyle.Render(label)
	default:
		return label
	}
}
