package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel is a rounded box with its title set into the top border.
// Content of an unfocused panel is dimmed.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Focused bool
}

func (p Panel) borderColor() lipgloss.Color {
	if p.Focused {
		return FocusedBorderColor
	}
	return UnfocusedBorderColor
}

// RenderPanel draws p at exactly p.Width x p.Height cells.
func RenderPanel(p Panel) string {
	width := p.Width
	if width <= 0 {
		width = 10
	}
	height := p.Height
	if height <= 0 {
		height = 3
	}

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	content := fitContent(p.Content, innerWidth, innerHeight)
	if !p.Focused {
		content = lipgloss.NewStyle().Faint(true).Render(content)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.borderColor()).
		Width(innerWidth).
		Height(innerHeight).
		Render(content)

	if p.Title == "" {
		return box
	}
	return withTitle(box, p.Title, width, p.borderColor())
}

// fitContent truncates each line to maxWidth and drops lines past maxHeight.
// Widths are measured with lipgloss so ANSI sequences are not split.
func fitContent(content string, maxWidth, maxHeight int) string {
	if content == "" {
		return ""
	}

	truncate := lipgloss.NewStyle().MaxWidth(maxWidth)
	lines := strings.Split(content, "\n")
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > maxWidth {
			lines[i] = truncate.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// withTitle replaces the top border line of box with one carrying title.
func withTitle(box, title string, width int, color lipgloss.Color) string {
	lines := strings.Split(box, "\n")
	if len(lines) == 0 {
		return box
	}

	label := " " + title + " "
	room := max(width-4, 1)
	if lipgloss.Width(label) > room {
		runes := []rune(title)
		keep := max(room-3, 0)
		if keep > len(runes) {
			keep = len(runes)
		}
		label = " " + string(runes[:keep]) + "… "
		if keep == 0 {
			label = " "
		}
	}

	dashes := max(width-lipgloss.Width(label)-3, 0)
	border := "╭─" + label + strings.Repeat("─", dashes) + "╮"
	lines[0] = lipgloss.NewStyle().Foreground(color).Render(border)

	return strings.Join(lines, "\n")
}
