package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Braille dots, one frame every 80ms.
var installSpinner = spinner.Spinner{
	Frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	FPS:    80 * time.Millisecond,
}

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(installSpinner),
		spinner.WithStyle(runningStyle),
	)
}
