// Package style provides the colors and icons shared by the console output.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Heading returns the style of section headings for the given renderer.
func Heading(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(Iris)
}

// Label returns the style of field labels for the given renderer.
func Label(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Slate)
}

// Success returns the style of completion messages for the given renderer.
func Success(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Green)
}
