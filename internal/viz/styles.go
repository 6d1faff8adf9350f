package viz

import "github.com/charmbracelet/lipgloss"

type styles struct {
	heading  lipgloss.Style
	caption  lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	tooltip  lipgloss.Style
	panel    lipgloss.Style
	help     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		heading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary)),
		caption:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(t.Muted)),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(lipgloss.Color(t.Accent)),
		tooltip:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.Panel)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		help: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Italic(true),
	}
}

// swatch renders a two-cell color block.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}
