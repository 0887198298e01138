package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderPanel(t *testing.T) {
	tests := []struct {
		name     string
		panel    Panel
		validate func(t *testing.T, result string)
	}{
		{
			name:  "title and content",
			panel: Panel{Title: "Programs", Content: "setup.exe", Width: 30, Height: 5, Focused: true},
			validate: func(t *testing.T, result string) {
				assert.Contains(t, result, "Programs")
				assert.Contains(t, result, "setup.exe")
			},
		},
		{
			name:  "no title keeps the plain border",
			panel: Panel{Content: "body", Width: 20, Height: 4},
			validate: func(t *testing.T, result string) {
				assert.True(t, strings.HasPrefix(result, "╭──"))
				assert.Contains(t, result, "body")
			},
		},
		{
			name:  "long title is shortened",
			panel: Panel{Title: strings.Repeat("x", 50), Width: 20, Height: 4},
			validate: func(t *testing.T, result string) {
				top := strings.Split(result, "\n")[0]
				assert.Contains(t, top, "…")
				assert.Equal(t, 20, lipgloss.Width(top))
			},
		},
		{
			name:  "zero dimensions fall back to minimum",
			panel: Panel{Title: "T", Content: "c"},
			validate: func(t *testing.T, result string) {
				assert.NotEmpty(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, RenderPanel(tt.panel))
		})
	}
}

func TestRenderPanel_ExactSize(t *testing.T) {
	result := RenderPanel(Panel{Title: "Logs", Content: "a\nb\nc\nd\ne\nf", Width: 24, Height: 5})

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 24, lipgloss.Width(line))
	}
}

func TestFitContent(t *testing.T) {
	got := fitContent("short\n"+strings.Repeat("w", 40)+"\nthird\nfourth", 10, 3)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "short", lines[0])
	assert.LessOrEqual(t, lipgloss.Width(lines[1]), 10)
	assert.Equal(t, "third", lines[2])
	assert.Empty(t, fitContent("", 10, 3))
}
