package tui

import (
	"autoinstall/internal/pathutil"
	"autoinstall/internal/program"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const addInputLabel = "Add program "

var errUnsupportedPath = errors.New("only .exe, .msi and .inf files can be added")

// AddInputModel is the inline path prompt opened with 'a'.
type AddInputModel struct {
	input textinput.Model
	err   error
}

func NewAddInput() AddInputModel {
	ti := textinput.New()
	ti.Prompt = "path: "
	ti.Placeholder = `C:\Installers\setup.exe`
	ti.CharLimit = 1024
	return AddInputModel{input: ti}
}

// validateProgramPath applies the add filter to a non-empty value.
func validateProgramPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || program.Accepts(s) {
		return nil
	}
	return errUnsupportedPath
}

func (a *AddInputModel) Open() tea.Cmd {
	a.input.Reset()
	a.err = nil
	return a.input.Focus()
}

func (a *AddInputModel) Close() {
	a.input.Blur()
	a.input.Reset()
	a.err = nil
}

func (a AddInputModel) Active() bool {
	return a.input.Focused()
}

func (a *AddInputModel) SetWidth(w int) {
	a.input.Width = max(w-len(addInputLabel)-len(a.input.Prompt)-1, 10)
}

// Submit returns the expanded path when the value passes the filter.
func (a *AddInputModel) Submit() (string, bool) {
	value := strings.TrimSpace(a.input.Value())
	if value == "" {
		return "", true
	}
	if err := validateProgramPath(value); err != nil {
		a.err = err
		return "", false
	}
	return pathutil.Expand(value), true
}

func (a *AddInputModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.err = nil
	return cmd
}

func (a AddInputModel) View() string {
	view := inputLabelStyle.Render(addInputLabel) + a.input.View()
	if a.err != nil {
		view += "\n" + inputErrorStyle.Render(a.err.Error())
	}
	return view
}
