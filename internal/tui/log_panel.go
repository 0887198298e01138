package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// LogPanelModel shows installer output. It follows new lines while
// scrolled to the bottom.
type LogPanelModel struct {
	viewport viewport.Model
	logs     []string
	source   string
	empty    string
}

func NewLogPanel() LogPanelModel {
	return LogPanelModel{empty: "Waiting for output..."}
}

func (l *LogPanelModel) SetSize(width, height int) {
	l.viewport = viewport.New(width, height)
	l.viewport.SetContent(strings.Join(l.logs, "\n"))
	l.viewport.GotoBottom()
}

// Show replaces the panel content with the output of source.
func (l *LogPanelModel) Show(source string, logs []string, empty string) {
	l.source = source
	l.empty = empty
	l.logs = append([]string(nil), logs...)
	l.viewport.SetContent(strings.Join(l.logs, "\n"))
	l.viewport.GotoBottom()
}

func (l *LogPanelModel) AppendLog(line string) {
	wasAtBottom := l.viewport.AtBottom()
	l.logs = append(l.logs, line)
	l.viewport.SetContent(strings.Join(l.logs, "\n"))
	if wasAtBottom {
		l.viewport.GotoBottom()
	}
}

func (l LogPanelModel) Logs() []string {
	return l.logs
}

// Title describes the source, line count and scroll position.
func (l LogPanelModel) Title() string {
	title := "Logs"
	if l.source != "" {
		title += ": " + l.source
	}
	n := l.viewport.TotalLineCount()
	if len(l.logs) == 0 || n == 0 {
		return title
	}
	title = fmt.Sprintf("%s • %d lines", title, len(l.logs))
	if n > l.viewport.Height {
		title = fmt.Sprintf("%s (%d%%)", title, int(l.viewport.ScrollPercent()*100))
	}
	if !l.viewport.AtBottom() {
		title += " ▼"
	}
	return title
}

func (l LogPanelModel) View() string {
	if len(l.logs) == 0 {
		return lipgloss.NewStyle().Faint(true).Render(l.empty)
	}
	return l.viewport.View()
}

func (l *LogPanelModel) ScrollUp(n int) {
	l.viewport.ScrollUp(n)
}

func (l *LogPanelModel) ScrollDown(n int) {
	l.viewport.ScrollDown(n)
}

func (l *LogPanelModel) GotoBottom() {
	l.viewport.GotoBottom()
}

func (l LogPanelModel) AtBottom() bool {
	return l.viewport.AtBottom()
}
