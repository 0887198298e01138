package tui

import (
	"autoinstall/internal/runner"
	"autoinstall/internal/sequence"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxNoticeOutputLines = 10

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Notice is a modal message box. Any key dismisses it.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
	// Output holds the tail of installer output for failed runs.
	Output string
}

// noticeForError maps a rejected command to the message shown to the user.
func noticeForError(err error) Notice {
	switch {
	case errors.Is(err, sequence.ErrCapacityExceeded):
		return Notice{Level: NoticeWarning, Title: "Limit Reached", Message: "Cannot add more than 10 programs."}
	case errors.Is(err, sequence.ErrDuplicateEntry):
		return Notice{Level: NoticeInfo, Title: "Duplicate Entry", Message: "This program is already in the list."}
	case errors.Is(err, sequence.ErrNoEligibleProgram):
		return Notice{Level: NoticeInfo, Title: "No Programs", Message: "The list is empty or selection is out of range."}
	case errors.Is(err, sequence.ErrEndOfList):
		return Notice{Level: NoticeInfo, Title: "End of List", Message: "There are no more programs to skip."}
	case errors.Is(err, sequence.ErrEmptyPath):
		return Notice{Level: NoticeWarning, Title: "No Path", Message: "Enter the path of an .exe, .msi or .inf file."}
	default:
		return Notice{Level: NoticeError, Title: "Error", Message: err.Error()}
	}
}

// noticeForOutcome returns the notice for a failed or unsupported run.
// Successful runs produce none.
func noticeForOutcome(o runner.Outcome) (Notice, bool) {
	switch o.Status {
	case runner.StatusUnsupported:
		return Notice{Level: NoticeError, Title: "Unsupported File", Message: o.Message()}, true
	case runner.StatusFailed:
		n := Notice{Level: NoticeError, Title: "Error", Message: o.Message(), Output: o.Output}
		if o.Failure == runner.FailureInstall && o.ExitCode != 0 {
			n.Message += fmt.Sprintf(" (exit code %d)", o.ExitCode)
		}
		return n, true
	default:
		return Notice{}, false
	}
}

func (n Notice) color() lipgloss.Color {
	switch n.Level {
	case NoticeError:
		return red
	case NoticeWarning:
		return yellow
	default:
		return cyan
	}
}

func (n Notice) icon() string {
	switch n.Level {
	case NoticeError:
		return "✗"
	case NoticeWarning:
		return "!"
	default:
		return "i"
	}
}

// RenderNotice renders n as a bordered box:
//
//	╭──────────────────────────────────────────╮
//	│  ✗ Error                                 │
//	│                                          │
//	│    Failed to install C:\drivers\net.inf  │
//	│                                          │
//	│  ─── Last output ───                     │
//	│    error 0xE0000100                      │
//	│                                          │
//	│  press any key                           │
//	╰──────────────────────────────────────────╯
func RenderNotice(n Notice, width int) string {
	if width <= 0 {
		width = 60
	}
	innerWidth := max(min(width, 80)-6, 20)
	accent := lipgloss.NewStyle().Bold(true).Foreground(n.color())

	var b strings.Builder
	b.WriteString(accent.Render(truncateLine(n.icon()+" "+n.Title, innerWidth)))
	b.WriteString("\n\n")

	for _, line := range wrapText(n.Message, innerWidth-2) {
		b.WriteString(noticeMessageStyle.Render(line))
		b.WriteString("\n")
	}

	if n.Output != "" {
		b.WriteString("\n")
		b.WriteString(noticeOutputHeaderStyle.Render("─── Last output ───"))
		b.WriteString("\n")
		for _, line := range getLastLines(n.Output, maxNoticeOutputLines) {
			b.WriteString(noticeOutputStyle.Render(truncateLine(line, innerWidth-2)))
			b.WriteString("\n")
		}
	}

	b.WriteString(noticeHintStyle.Render("press any key"))

	return noticeBoxStyle.
		BorderForeground(n.color()).
		Width(innerWidth).
		Render(b.String())
}

// truncateLine shortens line to maxWidth runes, ending in "...".
func truncateLine(line string, maxWidth int) string {
	runes := []rune(line)
	if len(runes) <= maxWidth {
		return line
	}
	if maxWidth <= 3 {
		return "..."
	}
	return string(runes[:maxWidth-3]) + "..."
}

// wrapText breaks text into lines of at most width bytes, preferring spaces
// in the second half of each line.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	remaining := text
	for len(remaining) > 0 {
		if len(remaining) <= width {
			lines = append(lines, remaining)
			break
		}

		breakPoint := width
		if i := strings.LastIndexByte(remaining[:width], ' '); i >= width/2 {
			breakPoint = i
		}

		lines = append(lines, strings.TrimSpace(remaining[:breakPoint]))
		remaining = strings.TrimSpace(remaining[breakPoint:])
	}
	return lines
}

// getLastLines returns up to n trailing lines of text.
func getLastLines(text string, n int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
