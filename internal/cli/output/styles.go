package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by text-mode rendering.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	EntityID lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles builds the default style set. When the environment disables
// color (NO_COLOR, dumb terminal), styles degrade to plain text.
func NewStyles() *Styles {
	if termenv.EnvNoColor() {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header1:  plain.Bold(true),
			Header2:  plain.Bold(true),
			EntityID: plain,
			Success:  plain,
			Warning:  plain,
			Error:    plain,
			Muted:    plain,
		}
	}

	return &Styles{
		Header1:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Underline(true),
		Header2:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		EntityID: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
