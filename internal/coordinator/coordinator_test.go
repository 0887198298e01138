package coordinator

import (
	"autoinstall/internal/program"
	"autoinstall/internal/runner"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	setup  = program.New(`C:\setup\app.exe`)
	driver = program.New(`C:\drivers\net.inf`)
)

func TestCoordinator_CompletesWhenLogsFinishFirst(t *testing.T) {
	tests := []struct {
		name     string
		logLines []string
		outcome  runner.Outcome
	}{
		{
			name:     "multiple lines",
			logLines: []string{"extracting", "installing"},
			outcome:  runner.Outcome{Entry: setup, Status: runner.StatusSuccess},
		},
		{
			name:     "no output",
			logLines: nil,
			outcome:  runner.Outcome{Entry: setup, Status: runner.StatusSuccess},
		},
		{
			name:     "failed run",
			logLines: []string{"error 1603"},
			outcome:  runner.Outcome{Entry: setup, Status: runner.StatusFailed, Failure: runner.FailureLaunch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.StartRun(setup)
			for _, line := range tt.logLines {
				c.AddLogLine(line)
			}

			assert.Nil(t, c.LogsDone(), "LogsDone alone should not complete the run")

			msg := c.RunDone(tt.outcome)
			require.NotNil(t, msg)
			assert.Equal(t, tt.outcome.Status, msg.Outcome.Status)
			assert.Equal(t, setup, msg.Entry)
			assert.Equal(t, tt.logLines, msg.Logs)
			assert.Equal(t, tt.logLines, c.LogsFor(setup))
			assert.False(t, c.Active())
		})
	}
}

func TestCoordinator_CompletesWhenRunFinishesFirst(t *testing.T) {
	c := New()
	c.StartRun(setup)
	c.AddLogLine("early")

	assert.Nil(t, c.RunDone(runner.Outcome{Status: runner.StatusSuccess}))
	assert.True(t, c.Active())

	c.AddLogLine("late")
	msg := c.LogsDone()

	require.NotNil(t, msg)
	assert.Equal(t, []string{"early", "late"}, c.LogsFor(setup))
}

func TestCoordinator_FirstOutcomeWins(t *testing.T) {
	c := New()
	c.StartRun(setup)

	c.RunDone(runner.Outcome{Status: runner.StatusSuccess})
	c.RunDone(runner.Outcome{Status: runner.StatusFailed})
	msg := c.LogsDone()

	require.NotNil(t, msg)
	assert.Equal(t, runner.StatusSuccess, msg.Outcome.Status)
}

func TestCoordinator_HistoryFollowsEntryIdentity(t *testing.T) {
	c := New()

	c.StartRun(setup)
	c.AddLogLine("app output")
	c.LogsDone()
	c.RunDone(runner.Outcome{Status: runner.StatusSuccess})

	c.StartRun(driver)
	assert.Empty(t, c.CurrentLogs())
	c.AddLogLine("driver output")
	c.LogsDone()
	c.RunDone(runner.Outcome{Status: runner.StatusFailed})

	assert.Equal(t, []string{"app output"}, c.LogsFor(program.New(`c:\SETUP\APP.EXE`)))
	assert.Equal(t, []string{"driver output"}, c.LogsFor(driver))
	assert.Equal(t, driver, c.Current())

	c.Forget(setup)
	assert.Nil(t, c.LogsFor(setup))
}

func TestCoordinator_DoubleCompletionIgnored(t *testing.T) {
	c := New()
	c.StartRun(setup)
	c.LogsDone()

	require.NotNil(t, c.RunDone(runner.Outcome{Status: runner.StatusSuccess}))
	assert.Nil(t, c.RunDone(runner.Outcome{Status: runner.StatusFailed}))
	assert.Nil(t, c.LogsDone())
}

func TestCoordinator_UnknownEntryHasNoLogs(t *testing.T) {
	c := New()

	assert.Nil(t, c.LogsFor(setup))
	assert.False(t, c.Active())
}
