package tui

import (
	"autoinstall/internal/history"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const slowestShown = 3

// SummaryData contains the statistics of one session.
type SummaryData struct {
	Succeeded   int
	Failed      int
	Unsupported int
	Skipped     int
	Runs        int
	Elapsed     time.Duration
	Slowest     []ProgramTiming
}

// ProgramTiming holds a program name and how long its installer ran.
type ProgramTiming struct {
	Name     string
	Duration time.Duration
}

// NewSummaryData collects the session statistics from h.
func NewSummaryData(h *history.History) SummaryData {
	s := h.Summary()
	data := SummaryData{
		Succeeded:   s.Succeeded,
		Failed:      s.Failed,
		Unsupported: s.Unsupported,
		Skipped:     s.Skipped,
		Runs:        s.Runs,
		Elapsed:     h.ElapsedTime(false),
	}
	for _, o := range h.Slowest(slowestShown) {
		data.Slowest = append(data.Slowest, ProgramTiming{Name: o.Entry.Name(), Duration: o.Duration})
	}
	return data
}

// HasFailures reports whether any run failed or was unsupported.
func (d SummaryData) HasFailures() bool {
	return d.Failed > 0 || d.Unsupported > 0
}

// RenderSummary renders the end-of-session report:
//
//	╭────────────────────────────────────────────────────╮
//	│              ✓ AUTOINSTALL COMPLETE                │
//	│                 2m 34s total                       │
//	╰────────────────────────────────────────────────────╯
//
//	Summary
//	─────────────────────────────────────────
//	    4 succeeded    ████████████████░░░░  80%
//	    1 failed       ████░░░░░░░░░░░░░░░░  20%
//	    0 unsupported  ░░░░░░░░░░░░░░░░░░░░   0%
//	    2 skipped
//
//	Slowest Installers
//	─────────────────────────────────────────
//	   45.2s   office-setup.exe
func RenderSummary(data SummaryData, width int) string {
	title, style := "✓ AUTOINSTALL COMPLETE", summarySuccessStyle
	if data.HasFailures() {
		title, style = "✗ AUTOINSTALL FINISHED WITH ERRORS", summaryFailureStyle
	}

	var b strings.Builder
	b.WriteString(renderHeaderBox(title, data.Elapsed, width, style))
	b.WriteString("\n\n")
	b.WriteString(renderStatistics(data))
	b.WriteString("\n")

	if len(data.Slowest) > 0 {
		b.WriteString("\n")
		b.WriteString(renderSlowest(data.Slowest))
		b.WriteString("\n")
	}

	return b.String()
}

func renderHeaderBox(title string, elapsed time.Duration, width int, style lipgloss.Style) string {
	boxWidth := width
	if boxWidth <= 0 {
		boxWidth = 60
	}
	boxWidth = max(min(boxWidth, 80), 40)

	content := fmt.Sprintf("%s\n%s total", title, formatDuration(elapsed))

	return style.
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render(content)
}

func renderStatistics(data SummaryData) string {
	var b strings.Builder

	b.WriteString(summaryStatStyle.Render("  Summary"))
	b.WriteString("\n")
	b.WriteString(summaryStatStyle.Render("  " + strings.Repeat("─", 41)))
	b.WriteString("\n")

	runs := max(data.Runs, 1)
	percent := func(n int) float64 {
		return float64(n) / float64(runs) * 100
	}

	b.WriteString(renderStatLine(data.Succeeded, "succeeded", percent(data.Succeeded), successStyle))
	b.WriteString("\n")
	b.WriteString(renderStatLine(data.Failed, "failed", percent(data.Failed), failedStyle))
	b.WriteString("\n")
	b.WriteString(renderStatLine(data.Unsupported, "unsupported", percent(data.Unsupported), failedStyle))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("     %s %s",
		skippedStyle.Render(fmt.Sprintf("%2d", data.Skipped)),
		summaryStatStyle.Render("skipped")))

	return b.String()
}

func renderStatLine(count int, label string, percent float64, style lipgloss.Style) string {
	const barWidth = 20

	return fmt.Sprintf("     %s %s  %s  %s",
		style.Render(fmt.Sprintf("%2d", count)),
		summaryStatStyle.Render(fmt.Sprintf("%-11s", label)),
		renderMiniBar(percent, barWidth),
		summaryStatStyle.Render(fmt.Sprintf("%3.0f%%", percent)))
}

func renderMiniBar(percent float64, width int) string {
	filled := max(min(int(math.Round(percent/100*float64(width))), width), 0)

	return summaryBarStyle.Render(strings.Repeat("█", filled)) +
		summaryBarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func renderSlowest(timings []ProgramTiming) string {
	var b strings.Builder

	b.WriteString(summaryStatStyle.Render("  Slowest Installers"))
	b.WriteString("\n")
	b.WriteString(summaryStatStyle.Render("  " + strings.Repeat("─", 41)))

	for _, t := range timings[:min(len(timings), slowestShown)] {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("     %s   %s",
			summaryStatStyle.Render(fmt.Sprintf("%6s", formatDuration(t.Duration))),
			summaryStatStyle.Render(t.Name)))
	}

	return b.String()
}

// formatDuration formats d as "2m 34s", "45s" or "1.2s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	if seconds := d.Seconds(); seconds < 10 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
