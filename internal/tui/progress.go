package tui

import (
	"fmt"
	"strings"
	"time"
)

// ProgressOptions holds optional parameters for progress rendering.
type ProgressOptions struct {
	// Running is the name of the program currently installing.
	Running string
	// Skipped is the number of skip actions this session.
	Skipped int
}

// RenderProgress renders the run count against the list length and the
// session time, with a bar underneath:
//
//	"3 runs  •  5 programs  •  1m23s"
//	"████████████████░░░░░░░░░░░░░░░░"
func RenderProgress(runs, total int, elapsed time.Duration, width int) string {
	return RenderProgressWithOptions(runs, total, elapsed, width, ProgressOptions{})
}

// RenderProgressWithOptions is RenderProgress with the running program and
// skip count added to the stats line:
//
//	"2 runs  •  5 programs  •  Installing setup.exe  •  1 skipped  •  42s"
func RenderProgressWithOptions(runs, total int, elapsed time.Duration, width int, opts ProgressOptions) string {
	runs = max(runs, 0)
	total = max(total, 0)

	parts := []string{
		plural(runs, "run"),
		plural(total, "program"),
	}
	if opts.Running != "" {
		parts = append(parts, "Installing "+opts.Running)
	}
	if opts.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", opts.Skipped))
	}
	parts = append(parts, formatElapsedCompact(elapsed))
	statsLine := strings.Join(parts, "  •  ")

	barWidth := width
	if barWidth <= 0 {
		barWidth = len(statsLine)
	}
	if half := width / 2; half > 0 && barWidth > half {
		barWidth = half
	}

	filledCount := 0
	if total > 0 {
		filledCount = min(runs*barWidth/total, barWidth)
	}

	bar := progressFilledStyle.Render(strings.Repeat("█", filledCount)) +
		progressEmptyStyle.Render(strings.Repeat("░", barWidth-filledCount))

	return progressTextStyle.Render(statsLine) + "\n" + bar
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// formatElapsedCompact formats a duration as "45s", "1m23s" or "2h3m".
func formatElapsedCompact(d time.Duration) string {
	seconds := int(max(d, 0).Seconds())

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}
