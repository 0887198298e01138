package tui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogPanel_EmptyText(t *testing.T) {
	l := NewLogPanel()
	l.SetSize(40, 5)

	assert.Contains(t, l.View(), "Waiting for output...")
	assert.Equal(t, "Logs", l.Title())

	l.Show("setup.exe", nil, "No output captured")
	assert.Contains(t, l.View(), "No output captured")
	assert.Equal(t, "Logs: setup.exe", l.Title())
}

func TestLogPanel_FollowsTail(t *testing.T) {
	l := NewLogPanel()
	l.SetSize(40, 3)
	l.Show("setup.exe", nil, "")

	for i := 1; i <= 10; i++ {
		l.AppendLog(fmt.Sprintf("line %d", i))
	}

	assert.True(t, l.AtBottom())
	assert.Contains(t, l.View(), "line 10")
	assert.NotContains(t, l.View(), "line 1\n")
	assert.Equal(t, "Logs: setup.exe • 10 lines (100%)", l.Title())
}

func TestLogPanel_ScrolledUpStaysPut(t *testing.T) {
	l := NewLogPanel()
	l.SetSize(40, 3)
	for i := 1; i <= 10; i++ {
		l.AppendLog(fmt.Sprintf("line %d", i))
	}

	l.ScrollUp(5)
	l.AppendLog("line 11")

	assert.False(t, l.AtBottom())
	assert.NotContains(t, l.View(), "line 11")
	assert.Contains(t, l.Title(), "▼")

	l.GotoBottom()
	assert.Contains(t, l.View(), "line 11")
}

func TestLogPanel_ShowCopiesLines(t *testing.T) {
	l := NewLogPanel()
	l.SetSize(40, 5)
	src := []string{"a", "b"}

	l.Show("x.exe", src, "")
	l.AppendLog("c")

	assert.Equal(t, []string{"a", "b"}, src)
	assert.Equal(t, []string{"a", "b", "c"}, l.Logs())
}
