package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name         string
	Base         lipgloss.Style
	Border       lipgloss.Color
	Header       lipgloss.Style
	Practice     lipgloss.Style
	DonePractice lipgloss.Style
	Timer        lipgloss.Style
	Paused       lipgloss.Style
	Input        lipgloss.Style
	Focused      lipgloss.Style
	Dim          lipgloss.Style
	Highlight    lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:         "Default",
		Base:         lipgloss.NewStyle().Margin(1, 2),
		Border:       lipgloss.Color("63"),
		Header:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Practice:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		DonePractice: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Timer:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Paused:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Input:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Focused:      lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:         "Dracula",
		Base:         lipgloss.NewStyle().Margin(1, 2),
		Border:       lipgloss.Color("62"),
		Header:       lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		Practice:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		DonePractice: lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),
		Timer:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Paused:       lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
		Input:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Focused:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// ThemeOrder fixes the cycling order in the settings screen.
var ThemeOrder = []string{"default", "dracula"}

// CurrentTheme is the theme every view renders with. SetTheme swaps it.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}
