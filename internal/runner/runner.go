// Package runner executes a single program entry according to its kind.
package runner

import (
	"autoinstall/internal/cmdexec"
	"autoinstall/internal/logstream"
	"autoinstall/internal/program"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Status is the result class of a run.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
	StatusUnsupported
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unsupported"
	}
}

// Failure distinguishes how a failed run went wrong.
type Failure int

const (
	FailureNone Failure = iota
	// FailureLaunch means the program could not start or returned an error.
	FailureLaunch
	// FailureInstall means the installer helper exited non-zero.
	FailureInstall
)

func (f Failure) String() string {
	switch f {
	case FailureLaunch:
		return "launch failure"
	case FailureInstall:
		return "install failure"
	default:
		return "none"
	}
}

// Outcome is what happened when an entry was run.
type Outcome struct {
	Entry    program.Entry
	Status   Status
	Failure  Failure
	Err      error
	Output   string
	ExitCode int
	Duration time.Duration
}

// Message returns the text shown to the user for this outcome.
func (o Outcome) Message() string {
	switch {
	case o.Status == StatusUnsupported:
		return "Unsupported file type: " + o.Entry.Ext()
	case o.Failure == FailureInstall:
		return "Failed to install " + o.Entry.Path
	case o.Status == StatusFailed:
		return fmt.Sprintf("Failed to run %s: %v", o.Entry.Path, o.Err)
	default:
		return "Finished " + o.Entry.Path
	}
}

// Runner executes one entry and reports the outcome.
type Runner interface {
	Run(ctx context.Context, e program.Entry) Outcome
}

// Installer runs entries through a cmdexec.Runner.
type Installer struct {
	cmd    cmdexec.Runner
	logger zerolog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger used for run events.
func WithLogger(l zerolog.Logger) Option {
	return func(i *Installer) {
		i.logger = l
	}
}

// New creates an Installer. A nil cmd uses the real system runner.
func New(cmd cmdexec.Runner, opts ...Option) *Installer {
	if cmd == nil {
		cmd = cmdexec.DefaultRunner()
	}
	i := &Installer{cmd: cmd, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Command returns the process invocation for e. ok is false for
// unsupported kinds.
func Command(e program.Entry) (name string, args []string, ok bool) {
	switch e.Kind() {
	case program.KindExecutable:
		return e.Path, nil, true
	case program.KindPackage:
		return "msiexec", []string{"/i", e.Path}, true
	case program.KindDriverInfo:
		return "rundll32", []string{"setupapi,InstallHinfSection", "DefaultInstall", "128", e.Path}, true
	default:
		return "", nil, false
	}
}

// Run executes e and blocks until the process exits. There is no timeout.
func (i *Installer) Run(ctx context.Context, e program.Entry) Outcome {
	out := Outcome{Entry: e}

	name, args, ok := Command(e)
	if !ok {
		out.Status = StatusUnsupported
		logstream.Logf(ctx, "%s", out.Message())
		i.logger.Warn().Str("path", e.Path).Str("ext", e.Ext()).Msg("unsupported program type")
		return out
	}

	logstream.Logf(ctx, "$ %s", strings.Join(append([]string{name}, args...), " "))
	i.logger.Info().Str("path", e.Path).Str("kind", e.Kind().String()).Msg("running program")

	start := time.Now()
	output, err := i.cmd.Run(ctx, name, args...)
	out.Duration = time.Since(start)
	out.Output = string(output)

	if code, exited := cmdexec.ExitCode(err); exited {
		out.ExitCode = code
	}

	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		out.Failure = FailureLaunch
		if e.Kind() == program.KindDriverInfo {
			out.Failure = FailureInstall
		}
		i.logger.Error().Err(err).Str("path", e.Path).Int("exit_code", out.ExitCode).
			Str("failure", out.Failure.String()).Dur("duration", out.Duration).Msg("program failed")
		return out
	}

	out.Status = StatusSuccess
	i.logger.Info().Str("path", e.Path).Dur("duration", out.Duration).Msg("program finished")
	return out
}
