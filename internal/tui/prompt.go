package tui

import (
	"autoinstall/internal/program"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter asks for values outside the full-screen UI, used by the
// add and remove subcommands.
type Prompter interface {
	ProgramPath() (string, error)
	Confirm(title string) (bool, error)
}

type HuhPrompter struct {
	input      io.Reader
	output     io.Writer
	accessible bool
}

func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

// WithInput reads answers from r in accessible mode, which tests use to
// drive the form line by line.
func (p *HuhPrompter) WithInput(r io.Reader) *HuhPrompter {
	p.input = r
	p.accessible = true
	return p
}

func (p *HuhPrompter) WithOutput(w io.Writer) *HuhPrompter {
	p.output = w
	return p
}

// ProgramPath asks for an installer path and applies the add filter.
func (p *HuhPrompter) ProgramPath() (string, error) {
	var value string

	input := huh.NewInput().
		Title("Program to add").
		Description("Path to an .exe, .msi or .inf file").
		Value(&value).
		Validate(func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				return errors.New("path is required")
			}
			if !program.Accepts(s) {
				return errUnsupportedPath
			}
			return nil
		})

	if err := p.run(huh.NewGroup(input)); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (p *HuhPrompter) Confirm(title string) (bool, error) {
	var ok bool

	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	if err := p.run(huh.NewGroup(confirm)); err != nil {
		return false, err
	}
	return ok, nil
}

func (p *HuhPrompter) run(group *huh.Group) error {
	form := huh.NewForm(group).WithTheme(huh.ThemeCatppuccin())

	if p.input != nil {
		form = form.WithInput(p.input)
	}
	if p.output != nil {
		form = form.WithOutput(p.output)
	}
	if p.accessible {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}
	return nil
}
