package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Version     lipgloss.Style
	Prompt      lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	GroupHeader lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style
	Target      lipgloss.Style
	Deprecated  lipgloss.Style
	NoResults   lipgloss.Style
	Disabled    lipgloss.Style
	Count       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Version:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2).
			MaxHeight(100), // Will be dynamically adjusted
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		GroupHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Target:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Deprecated:  lipgloss.NewStyle().Strikethrough(true).Faint(true),
		NoResults: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		Disabled: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		Count: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MethodColor returns the badge color for an HTTP method
func MethodColor(method string) string {
	switch strings.ToUpper(method) {
	case "GET":
		return "78" // green
	case "POST":
		return "33" // blue
	case "PUT", "PATCH":
		return "214" // yellow
	case "DELETE":
		return "203" // red
	default:
		return "245" // gray for options, head and anything else
	}
}
