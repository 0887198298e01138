package tui

import (
	"autoinstall/internal/cmdexec"
	"autoinstall/internal/runner"
	"autoinstall/internal/sequence"
	"autoinstall/internal/store"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store *store.Memory
	seq   *sequence.Sequence
	cmd   *cmdexec.MockRunner
}

func newTestModel(t *testing.T, paths ...string) (Model, *testEnv) {
	t.Helper()

	st := &store.Memory{Paths: paths}
	seq, err := sequence.Load(st)
	require.NoError(t, err)

	mock := &cmdexec.MockRunner{}
	env := &testEnv{store: st, seq: seq, cmd: mock}
	return New(seq, runner.New(mock)), env
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// press sends msg and returns the model without running the command.
func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// drive runs cmd and every command it produces, feeding messages back
// into the model until nothing is left. Installers run synchronously.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "command loop did not settle")

		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var next tea.Cmd
			m, next = press(t, m, msg)
			queue = append(queue, next)
		}
	}
	return m
}

// sendKeys presses each key and drives the resulting commands.
func sendKeys(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = press(t, m, k)
		m = drive(t, m, cmd)
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// rowFor returns the rendered list line containing path.
func rowFor(t *testing.T, view, path string) string {
	t.Helper()
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, path) {
			return line
		}
	}
	t.Fatalf("no row for %s in view:\n%s", path, view)
	return ""
}

func AssertSelected(t *testing.T, view, path string) {
	t.Helper()
	assert.Contains(t, rowFor(t, view, path), SelectionIndicator, "%s should be selected", path)
}

func AssertNotSelected(t *testing.T, view, path string) {
	t.Helper()
	assert.NotContains(t, rowFor(t, view, path), SelectionIndicator, "%s should not be selected", path)
}

func AssertCursor(t *testing.T, view, path string) {
	t.Helper()
	assert.Contains(t, rowFor(t, view, path), CursorIndicator, "%s should carry the cursor", path)
}

func AssertSkipped(t *testing.T, view, path string) {
	t.Helper()
	assert.Contains(t, rowFor(t, view, path), SkippedLabel, "%s should be marked skipped", path)
}

func AssertOutcome(t *testing.T, view, path, mark string) {
	t.Helper()
	assert.Contains(t, rowFor(t, view, path), mark, "%s should show outcome %s", path, mark)
}

func AssertNotice(t *testing.T, m Model, title string) {
	t.Helper()
	require.NotNil(t, m.notice, "expected notice %q", title)
	assert.Equal(t, title, m.notice.Title)
	assert.Contains(t, m.View(), title)
}

// typeText enters s into the open add prompt. Cursor blink commands are
// dropped so the loop does not tick forever.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = press(t, m, keyRune(s))
	return m
}
