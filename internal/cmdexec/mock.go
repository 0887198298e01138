package cmdexec

import (
	"autoinstall/internal/logstream"
	"context"
)

// MockRunner is a test double for Runner.
// Configure it with expected responses before use.
type MockRunner struct {
	// RunFunc is called when Run is invoked.
	RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

	// Calls records all Run invocations for assertions.
	Calls []RunCall
}

// RunCall records a single Run invocation.
type RunCall struct {
	Name string
	Args []string
}

// Run delegates to RunFunc and records the call. Output returned by
// RunFunc is echoed to the context's stream like the real runner does.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, RunCall{Name: name, Args: args})
	if m.RunFunc == nil {
		return nil, nil
	}
	out, err := m.RunFunc(ctx, name, args...)
	if w := logstream.Writer(ctx); w != nil && len(out) > 0 {
		_, _ = w.Write(out)
	}
	return out, err
}
