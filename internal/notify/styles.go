package notify

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	green  = lipgloss.Color("#03BF87")
	yellow = lipgloss.Color("#E5C07B")
	red    = lipgloss.Color("#E06C75")
)

// bannerStyle returns the style of a notification line at level.
func bannerStyle(r *lipgloss.Renderer, level Level) lipgloss.Style {
	color := green
	switch level {
	case LevelWarn:
		color = yellow
	case LevelError:
		color = red
	}
	return r.NewStyle().
		Bold(true).
		Foreground(color).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1)
}

// Banner renders message the way notifications appear in the terminal.
func Banner(w io.Writer, level Level, message string) string {
	return bannerStyle(lipgloss.NewRenderer(w), level).Render(message)
}
