package tui

import (
	"autoinstall/internal/history"
	"autoinstall/internal/runner"
	"autoinstall/internal/sequence"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	SelectionIndicator = "▶"
	CursorIndicator    = "→"
	SkippedLabel       = "○ skipped"
	NextLabel          = "next"
)

// ProgramListModel renders the sequence and owns the row selection.
// The selection is a view concern; the sequence only sees it when a
// command is dispatched.
type ProgramListModel struct {
	seq      *sequence.Sequence
	hist     *history.History
	viewport viewport.Model
	spinner  spinner.Model
	selected sequence.Selection
	width    int
	height   int
}

func NewProgramList(seq *sequence.Sequence, hist *history.History) *ProgramListModel {
	return &ProgramListModel{
		seq:     seq,
		hist:    hist,
		spinner: newSpinner(),
	}
}

// ProgramSelectedMsg is emitted when keyboard navigation changes the row.
type ProgramSelectedMsg struct {
	Selection sequence.Selection
}

func (l *ProgramListModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		if !l.seq.Running() {
			return nil
		}
		l.refreshContent()
		return cmd
	}
	return nil
}

// SelectNext moves the selection down, selecting the first row when
// nothing is selected.
func (l *ProgramListModel) SelectNext() tea.Cmd {
	n := l.seq.Len()
	if n == 0 {
		return nil
	}
	i, ok := l.selected.Index()
	switch {
	case !ok:
		return l.SetSelection(sequence.Select(0))
	case i < n-1:
		return l.SetSelection(sequence.Select(i + 1))
	}
	return nil
}

// SelectPrev moves the selection up, selecting the last row when nothing
// is selected.
func (l *ProgramListModel) SelectPrev() tea.Cmd {
	n := l.seq.Len()
	if n == 0 {
		return nil
	}
	i, ok := l.selected.Index()
	switch {
	case !ok:
		return l.SetSelection(sequence.Select(n - 1))
	case i > 0:
		return l.SetSelection(sequence.Select(i - 1))
	}
	return nil
}

// SetSelection selects sel, or clears the selection when sel is out of range.
func (l *ProgramListModel) SetSelection(sel sequence.Selection) tea.Cmd {
	if i, ok := sel.Index(); !ok || i < 0 || i >= l.seq.Len() {
		sel = sequence.NoSelection
	}
	l.selected = sel
	l.ensureVisible()
	l.refreshContent()
	return func() tea.Msg {
		return ProgramSelectedMsg{Selection: sel}
	}
}

func (l *ProgramListModel) ClearSelection() tea.Cmd {
	return l.SetSelection(sequence.NoSelection)
}

func (l *ProgramListModel) Selection() sequence.Selection {
	return l.selected
}

func (l *ProgramListModel) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.viewport = viewport.New(width, height)
	l.refreshContent()
}

func (l *ProgramListModel) SpinnerTick() tea.Cmd {
	return l.spinner.Tick
}

func (l *ProgramListModel) ScrollUp(n int) {
	l.viewport.ScrollUp(n)
}

func (l *ProgramListModel) ScrollDown(n int) {
	l.viewport.ScrollDown(n)
}

func (l *ProgramListModel) View() string {
	l.refreshContent()
	return l.viewport.View()
}

func (l *ProgramListModel) ensureVisible() {
	i, ok := l.selected.Index()
	if !ok || l.viewport.Height == 0 {
		return
	}
	top := l.viewport.YOffset
	if i < top {
		l.viewport.SetYOffset(i)
	}
	if i >= top+l.viewport.Height {
		l.viewport.SetYOffset(i - l.viewport.Height + 1)
	}
}

func (l *ProgramListModel) refreshContent() {
	l.viewport.SetContent(l.renderRows())
}

func (l *ProgramListModel) renderRows() string {
	if l.seq.Len() == 0 {
		return emptyListStyle.Render("No programs yet. Press 'a' to add one.")
	}

	rows := make([]string, 0, l.seq.Len())
	for i := range l.seq.Entries() {
		rows = append(rows, l.renderRow(i))
	}
	return strings.Join(rows, "\n")
}

func (l *ProgramListModel) renderRow(i int) string {
	e, _ := l.seq.Entry(i)
	selIdx, hasSel := l.selected.Index()
	selected := hasSel && selIdx == i
	isCursor := i == l.seq.Cursor()
	running := isCursor && l.seq.Running()

	prefix := "  "
	if selected {
		prefix = SelectionIndicator + " "
	}
	if isCursor {
		prefix += CursorIndicator + " "
	} else {
		prefix += "  "
	}

	mark, style := l.rowMark(i)
	prefix += mark + " " + fmt.Sprintf("%d. ", i+1)

	var tags []string
	if l.seq.IsSkipped(i) {
		tags = append(tags, SkippedLabel)
	}
	if i == l.seq.Highlight() && !running {
		tags = append(tags, NextLabel)
	}
	tags = append(tags, kindStyle.Render(e.Kind().String()))
	suffix := strings.Join(tags, " ")

	line := style.Render(renderRowWithLeader(prefix, e.Path, suffix, l.width))
	if selected {
		if pad := l.width - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		line = selectedRowStyle.Render(line)
	}
	return line
}

// rowMark picks the status glyph and row style. A skipped row is dimmed
// only while it has no outcome and is neither the cursor nor running.
func (l *ProgramListModel) rowMark(i int) (string, lipgloss.Style) {
	e, _ := l.seq.Entry(i)
	isCursor := i == l.seq.Cursor()

	switch o, ran := l.hist.Latest(e); {
	case isCursor && l.seq.Running():
		return l.spinner.View(), runningStyle
	case ran:
		return outcomeMark(o.Status)
	case isCursor:
		return " ", cursorStyle
	case l.seq.IsSkipped(i):
		return " ", skippedStyle
	default:
		return " ", pendingStyle
	}
}

func outcomeMark(s runner.Status) (string, lipgloss.Style) {
	switch s {
	case runner.StatusSuccess:
		return "✓", successStyle
	case runner.StatusFailed:
		return "✗", failedStyle
	default:
		return "?", failedStyle
	}
}

// renderRowWithLeader joins prefix, name and suffix with a dotted leader
// filling totalWidth. The name is shortened when it does not fit.
func renderRowWithLeader(prefix, name, suffix string, totalWidth int) string {
	fixed := lipgloss.Width(prefix) + lipgloss.Width(suffix) + 2
	const minLeader = 3
	if room := totalWidth - fixed - minLeader; room > 0 && lipgloss.Width(name) > room {
		name = truncateLine(name, room)
	}

	leaderSpace := max(totalWidth-fixed-lipgloss.Width(name), minLeader)
	return prefix + name + " " + leaderStyle.Render(strings.Repeat("·", leaderSpace)) + " " + suffix
}
