package main

import (
	"autoinstall/internal/config"
	"autoinstall/internal/logging"
	"autoinstall/internal/pathutil"
	"autoinstall/internal/program"
	"autoinstall/internal/runner"
	"autoinstall/internal/sequence"
	"autoinstall/internal/store"
	"autoinstall/internal/tui"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

const summaryWidth = 60

type CLI struct {
	Config  string     `help:"Path to config file (default: $XDG_CONFIG_HOME/autoinstall/config.yaml)" type:"path"`
	Store   string     `help:"Path to the program list, overrides the config" type:"path"`
	Run     RunCmd     `cmd:"" default:"withargs" help:"Open the installer sequence (default)"`
	List    ListCmd    `cmd:"" help:"Print the stored program list"`
	Add     AddCmd     `cmd:"" help:"Append a program to the list"`
	Remove  RemoveCmd  `cmd:"" help:"Remove a program from the list"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// settings loads the explicit config file, or the default one when present.
func (c *CLI) settings() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.Config != "" {
		cfg, err = config.Load(c.Config)
	} else {
		cfg, err = config.LoadOptional(config.DefaultConfigPath())
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if c.Store != "" {
		cfg.Store = pathutil.Expand(c.Store)
	}
	return cfg, nil
}

// session is the state shared by every subcommand.
type session struct {
	cfg    *config.Config
	seq    *sequence.Sequence
	logger zerolog.Logger
	closer io.Closer
}

func (s *session) Close() error {
	return s.closer.Close()
}

func (c *CLI) open() (*session, error) {
	cfg, err := c.settings()
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	seq, err := sequence.Load(store.NewFileStore(cfg.Store), sequence.WithLogger(logger))
	if err != nil {
		closer.Close()
		return nil, err
	}

	return &session{cfg: cfg, seq: seq, logger: logger, closer: closer}, nil
}

type RunCmd struct{}

func (c *RunCmd) Run(cli *CLI, out io.Writer) error {
	s, err := cli.open()
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info().Str("store", s.cfg.Store).Int("entries", s.seq.Len()).Msg("session started")

	model := tui.New(s.seq, runner.New(nil, runner.WithLogger(s.logger)), tui.WithLogger(s.logger))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if err := fm.Err(); err != nil {
		return err
	}

	data := tui.NewSummaryData(fm.History())
	s.logger.Info().
		Int("runs", data.Runs).
		Int("failed", data.Failed).
		Int("skipped", data.Skipped).
		Msg("session finished")
	if data.Runs > 0 || data.Skipped > 0 {
		fmt.Fprintln(out, tui.RenderSummary(data, summaryWidth))
	}
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(cli *CLI, out io.Writer) error {
	s, err := cli.open()
	if err != nil {
		return err
	}
	defer s.Close()

	entries := s.seq.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No programs in the list")
		return nil
	}

	for i, e := range entries {
		fmt.Fprintf(out, "%2d. %s  [%s]\n", i+1, e.Path, e.Kind())
	}
	return nil
}

type AddCmd struct {
	Path string `arg:"" optional:"" help:"Installer path (.exe, .msi or .inf); prompted for when omitted"`
}

func (c *AddCmd) Run(cli *CLI, out io.Writer, prompter tui.Prompter) error {
	path := strings.TrimSpace(c.Path)
	if path == "" {
		var err error
		if path, err = prompter.ProgramPath(); err != nil {
			return err
		}
	}
	path = pathutil.Expand(path)

	if !program.Accepts(path) {
		return fmt.Errorf("unsupported file type %q: only %s files can be added",
			program.New(path).Ext(), strings.Join(program.Extensions, ", "))
	}

	s, err := cli.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.seq.Dispatch(sequence.Add{Path: path}); err != nil {
		if errors.Is(err, sequence.ErrDuplicateEntry) {
			fmt.Fprintf(out, "Already in the list: %s\n", path)
			return nil
		}
		return fmt.Errorf("add program: %w", err)
	}

	fmt.Fprintf(out, "Added %d. %s\n", s.seq.Len(), path)
	return nil
}

type RemoveCmd struct {
	Index int  `arg:"" help:"Position of the program in the list, starting at 1"`
	Yes   bool `short:"y" help:"Remove without asking for confirmation"`
}

func (c *RemoveCmd) Run(cli *CLI, out io.Writer, prompter tui.Prompter) error {
	s, err := cli.open()
	if err != nil {
		return err
	}
	defer s.Close()

	e, ok := s.seq.Entry(c.Index - 1)
	if !ok {
		return fmt.Errorf("no program at position %d (list has %d)", c.Index, s.seq.Len())
	}

	if !c.Yes {
		confirmed, err := prompter.Confirm(fmt.Sprintf("Remove %s?", e.Path))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Nothing removed")
			return nil
		}
	}

	if _, err := s.seq.Dispatch(sequence.Remove{Selection: sequence.Select(c.Index - 1)}); err != nil {
		return fmt.Errorf("remove program: %w", err)
	}

	fmt.Fprintf(out, "Removed %s\n", e.Path)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	fmt.Fprintf(out, "autoinstall %s (commit: %s, built: %s)\n", Version, Commit, Date)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("autoinstall"),
		kong.Description("Run a short list of installers one after another"),
		kong.UsageOnError(),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
		kong.BindTo(tui.NewHuhPrompter(), (*tui.Prompter)(nil)),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
