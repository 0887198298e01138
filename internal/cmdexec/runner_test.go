package cmdexec

import (
	"autoinstall/internal/logstream"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealRunner_CapturesAndStreamsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	w, ch := logstream.NewChannelWriter(10)
	ctx := logstream.WithWriter(context.Background(), w)

	out, err := DefaultRunner().Run(ctx, "sh", "-c", "echo installing; echo done")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, "installing\ndone\n", string(out))

	var lines []string
	for l := range ch {
		lines = append(lines, l)
	}
	assert.Equal(t, []string{"installing", "done"}, lines)
}

func TestRealRunner_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	_, err := DefaultRunner().Run(context.Background(), "sh", "-c", "exit 3")

	require.Error(t, err)
	code, ok := ExitCode(err)
	assert.True(t, ok)
	assert.Equal(t, 3, code)
}

func TestRealRunner_LaunchFailure(t *testing.T) {
	_, err := DefaultRunner().Run(context.Background(), "/definitely/not/here/setup.exe")

	require.Error(t, err)
	_, ok := ExitCode(err)
	assert.False(t, ok, "a process that never started has no exit code")
}

func TestExitCode_OtherErrors(t *testing.T) {
	_, ok := ExitCode(errors.New("plain"))
	assert.False(t, ok)

	_, ok = ExitCode(exec.ErrNotFound)
	assert.False(t, ok)
}

func TestMockRunner(t *testing.T) {
	w, ch := logstream.NewChannelWriter(10)
	ctx := logstream.WithWriter(context.Background(), w)

	m := &MockRunner{
		RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return []byte("ok\n"), nil
		},
	}

	out, err := m.Run(ctx, "rundll32", "setupapi,InstallHinfSection")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, "ok\n", string(out))
	require.Len(t, m.Calls, 1)
	assert.Equal(t, "rundll32", m.Calls[0].Name)
	assert.Equal(t, []string{"setupapi,InstallHinfSection"}, m.Calls[0].Args)
	assert.Equal(t, "ok", <-ch)
}
