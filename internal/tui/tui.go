package tui

import (
	"autoinstall/internal/coordinator"
	"autoinstall/internal/history"
	"autoinstall/internal/logstream"
	"autoinstall/internal/program"
	"autoinstall/internal/runner"
	"autoinstall/internal/sequence"
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	maxLogLines = 8
	logBuffer   = 100
)

type FocusPanel int

const (
	FocusProgramList FocusPanel = iota
	FocusLogs
)

// Model is the interactive program list. It owns the sequence and is the
// only thing that touches it; installers run in a command goroutine while
// every key except quit is ignored.
type Model struct {
	seq    *sequence.Sequence
	run    runner.Runner
	coord  *coordinator.Coordinator
	hist   *history.History
	logger zerolog.Logger

	keys keyMap
	help help.Model

	list  *ProgramListModel
	logs  LogPanelModel
	input AddInputModel

	notice *Notice
	err    error

	showLogs        bool
	followSelection bool
	focusedPanel    FocusPanel
	width           int
	height          int
	layout          Layout

	logCh     <-chan string
	logWriter *logstream.ChannelWriter
}

// Option configures a Model.
type Option func(*Model)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithHistory shares a session history with the caller.
func WithHistory(h *history.History) Option {
	return func(m *Model) {
		m.hist = h
	}
}

func New(seq *sequence.Sequence, run runner.Runner, opts ...Option) Model {
	m := Model{
		seq:             seq,
		run:             run,
		coord:           coordinator.New(),
		hist:            history.New(),
		logger:          zerolog.Nop(),
		keys:            defaultKeyMap(),
		help:            help.New(),
		logs:            NewLogPanel(),
		input:           NewAddInput(),
		showLogs:        true,
		followSelection: true,
		focusedPanel:    FocusProgramList,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.list = NewProgramList(seq, m.hist)
	m.list.SetSize(80, sequence.MaxEntries)
	return m
}

// Err returns the fault that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// History returns the outcomes of this session.
func (m Model) History() *history.History {
	return m.hist
}

func (m Model) Init() tea.Cmd {
	return nil
}

type runDoneMsg struct {
	outcome runner.Outcome
}

type logLineMsg struct {
	line string
}

type logDoneMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		return m, m.list.Update(msg)

	case logLineMsg:
		m.coord.AddLogLine(msg.line)
		m.logs.AppendLog(msg.line)
		return m, listenForLogs(m.logCh)

	case logDoneMsg:
		if done := m.coord.LogsDone(); done != nil {
			return m.completeRun(done)
		}
		return m, nil

	case runDoneMsg:
		if done := m.coord.RunDone(msg.outcome); done != nil {
			return m.completeRun(done)
		}
		return m, nil

	case ProgramSelectedMsg:
		if !m.seq.Running() && m.followSelection {
			m.showLogsFor(msg.Selection)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}

	if m.input.Active() {
		return m, m.input.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notice != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.notice = nil
		return m, nil
	}

	if m.input.Active() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if !m.showLogs {
			m.focusedPanel = FocusProgramList
		}
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.showLogs && m.layout.IsTwoColumn() {
			if m.focusedPanel == FocusProgramList {
				m.focusedPanel = FocusLogs
			} else {
				m.focusedPanel = FocusProgramList
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.logs.GotoBottom()
		return m, nil
	}

	if m.focusedPanel == FocusLogs {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.logs.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.logs.ScrollDown(1)
		}
		if !m.seq.Running() && !key.Matches(msg, m.keys.Up, m.keys.Down) {
			return m.handleListKey(msg)
		}
		return m, nil
	}

	if m.seq.Running() {
		return m, nil
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.followSelection = true

	switch {
	case key.Matches(msg, m.keys.MoveUp):
		m, cmd, _ := m.dispatch(sequence.MoveUp{Selection: m.list.Selection()})
		return m, cmd

	case key.Matches(msg, m.keys.MoveDown):
		m, cmd, _ := m.dispatch(sequence.MoveDown{Selection: m.list.Selection()})
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		return m, m.list.SelectPrev()

	case key.Matches(msg, m.keys.Down):
		return m, m.list.SelectNext()

	case key.Matches(msg, m.keys.Add):
		if m.seq.Len() >= sequence.MaxEntries {
			n := noticeForError(sequence.ErrCapacityExceeded)
			m.notice = &n
			return m, nil
		}
		m.focusedPanel = FocusProgramList
		cmd := m.input.Open()
		m.refit()
		return m, cmd

	case key.Matches(msg, m.keys.Remove):
		sel := m.list.Selection()
		removed, hadEntry := program.Entry{}, false
		if i, ok := sel.Index(); ok {
			removed, hadEntry = m.seq.Entry(i)
		}
		m, cmd, ok := m.dispatch(sequence.Remove{Selection: sel})
		if ok && hadEntry {
			m.coord.Forget(removed)
		}
		return m, cmd

	case key.Matches(msg, m.keys.Start):
		m, cmd, _ := m.dispatch(sequence.Start{Selection: m.list.Selection()})
		return m, cmd

	case key.Matches(msg, m.keys.Skip):
		m, cmd, ok := m.dispatch(sequence.Skip{})
		if ok {
			m.hist.Skip()
		}
		return m, cmd

	case key.Matches(msg, m.keys.Clear):
		return m, m.list.ClearSelection()
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.input.Close()
		m.refit()
		return m, nil

	case tea.KeyEnter:
		path, ok := m.input.Submit()
		if !ok {
			return m, nil
		}
		m.input.Close()
		m.refit()
		m.followSelection = true
		m, cmd, added := m.dispatch(sequence.Add{Path: path})
		if added {
			cmd = tea.Batch(cmd, m.list.SetSelection(sequence.Select(m.seq.Len()-1)))
		}
		return m, cmd
	}

	return m, m.input.Update(msg)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.layout.IsTwoColumn() || !m.showLogs {
		return m, nil
	}

	onList := msg.X-2 < m.layout.LeftWidth
	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			if onList {
				m.focusedPanel = FocusProgramList
			} else {
				m.focusedPanel = FocusLogs
			}
		}
	case tea.MouseButtonWheelUp:
		if onList {
			m.list.ScrollUp(3)
		} else {
			m.logs.ScrollUp(3)
		}
	case tea.MouseButtonWheelDown:
		if onList {
			m.list.ScrollDown(3)
		} else {
			m.logs.ScrollDown(3)
		}
	}
	return m, nil
}

// dispatch forwards cmd to the sequence. Rejections become notices; a
// failed save ends the session. ok reports whether cmd was applied.
func (m Model) dispatch(cmd sequence.Command) (Model, tea.Cmd, bool) {
	d, err := m.seq.Dispatch(cmd)
	if errors.Is(err, sequence.ErrSave) {
		m.logger.Error().Err(err).Msg("persisting program list failed")
		m.err = err
		return m, tea.Quit, false
	}
	if err != nil {
		if sequence.IsInformational(err) {
			m.logger.Debug().Err(err).Msg("command declined")
		} else {
			m.logger.Warn().Err(err).Msg("command rejected")
		}
		n := noticeForError(err)
		m.notice = &n
		return m, nil, false
	}

	var cmds []tea.Cmd
	if d.Reselect {
		cmds = append(cmds, m.list.SetSelection(d.Selection))
	}
	if d.Run != nil {
		var start tea.Cmd
		m, start = m.startRun(*d.Run)
		cmds = append(cmds, start)
	}
	return m, tea.Batch(cmds...), true
}

func (m Model) startRun(req sequence.RunRequest) (Model, tea.Cmd) {
	logWriter, logCh := logstream.NewChannelWriter(logBuffer)
	m.logWriter = logWriter
	m.logCh = logCh

	m.coord.StartRun(req.Entry)
	m.hist.Begin()
	m.logs.Show(req.Entry.Name(), nil, "Waiting for output...")
	m.logger.Debug().Str("path", req.Entry.Path).Int("index", req.Index).Msg("starting installer")

	return m, tea.Batch(
		runProgram(m.run, req.Entry, logWriter),
		listenForLogs(logCh),
		m.list.SpinnerTick(),
	)
}

func (m Model) completeRun(done *coordinator.RunCompleteMsg) (tea.Model, tea.Cmd) {
	m.logWriter = nil
	m.logCh = nil
	m.hist.Add(done.Outcome)

	m, cmd, ok := m.dispatch(sequence.Complete{})
	if !ok {
		return m, cmd
	}

	// The reselect that follows completion must not replace the output
	// of the run that just finished.
	m.followSelection = false

	if n, failed := noticeForOutcome(done.Outcome); failed {
		m.notice = &n
	}
	m.logs.Show(done.Entry.Name(), done.Logs, "No output captured")
	return m, cmd
}

func (m *Model) showLogsFor(sel sequence.Selection) {
	i, ok := sel.Index()
	if !ok {
		return
	}
	e, ok := m.seq.Entry(i)
	if !ok {
		return
	}
	empty := "Not run in this session"
	if _, ran := m.hist.Latest(e); ran {
		empty = "No output captured"
	}
	m.logs.Show(e.Name(), m.coord.LogsFor(e), empty)
}

func (m *Model) resize() {
	contentWidth, contentHeight := m.contentDimensions()
	m.layout = NewLayout(contentWidth, contentHeight)
	m.help.Width = contentWidth

	if m.layout.IsTwoColumn() {
		w, h := m.layout.ListViewportSize(m.showLogs)
		if m.input.Active() {
			h = max(h-addInputHeight, 1)
		}
		m.list.SetSize(w, h)
		m.input.SetWidth(w)
		m.logs.SetSize(m.layout.LogViewportSize())
		return
	}

	w := max(contentWidth, 40)
	m.list.SetSize(w, sequence.MaxEntries)
	m.input.SetWidth(w)
}

// refit recomputes the layout once the terminal size is known.
func (m *Model) refit() {
	if m.width > 0 && m.height > 0 {
		m.resize()
	}
}

func (m Model) contentDimensions() (width, height int) {
	return max(m.width-4, 10), max(m.height-2, 3)
}

func (m Model) View() string {
	var content string
	switch {
	case m.notice != nil:
		content = m.renderNotice()
	case m.layout.IsTwoColumn():
		content = m.renderTwoColumn()
	default:
		content = m.renderSingleColumn()
	}

	if m.width > 0 && m.height > 0 {
		return appContainerStyle.Render(content)
	}
	return content
}

func (m Model) renderNotice() string {
	box := RenderNotice(*m.notice, m.width-4)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	w, h := m.contentDimensions()
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderSingleColumn() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("AUTOINSTALL"))
	s.WriteString("\n")
	s.WriteString(m.renderListContent(max(m.width-4, 40)))
	s.WriteString("\n")

	if m.coord.Active() {
		if logs := m.coord.CurrentLogs(); len(logs) > 0 {
			s.WriteString(logHeaderStyle.Render("─── logs ───"))
			s.WriteString("\n")
			for _, line := range logs[max(len(logs)-maxLogLines, 0):] {
				if w := m.width - 8; w > 3 {
					line = truncateLine(line, w)
				}
				s.WriteString(logLineStyle.Render(line))
				s.WriteString("\n")
			}
		}
	}

	s.WriteString(m.renderHelp())
	return s.String()
}

func (m Model) renderTwoColumn() string {
	height := m.layout.PanelHeight()
	listFocused := m.focusedPanel == FocusProgramList || !m.showLogs

	left := Panel{
		Title:   "AUTOINSTALL",
		Width:   m.layout.LeftWidth,
		Height:  height,
		Focused: listFocused,
	}
	if !m.showLogs {
		left.Width = m.layout.LeftWidth + m.layout.RightWidth
	}
	left.Content = m.renderListContent(left.Width - listPanelPadding)

	panels := RenderPanel(left)
	if m.showLogs {
		right := Panel{
			Title:   m.logs.Title(),
			Content: m.logs.View(),
			Width:   m.layout.RightWidth,
			Height:  height,
			Focused: m.focusedPanel == FocusLogs,
		}
		panels = lipgloss.JoinHorizontal(lipgloss.Top, panels, RenderPanel(right))
	}

	return panels + "\n" + m.renderHelp()
}

func (m Model) renderListContent(width int) string {
	var s strings.Builder

	opts := ProgressOptions{Skipped: m.hist.Summary().Skipped}
	if m.seq.Running() {
		opts.Running = m.coord.Current().Name()
	}
	s.WriteString(RenderProgressWithOptions(
		m.hist.Runs(), m.seq.Len(), m.hist.ElapsedTime(m.seq.Running()), max(width-4, 20), opts))
	s.WriteString("\n\n")
	s.WriteString(m.list.View())

	if m.input.Active() {
		s.WriteString("\n\n")
		s.WriteString(m.input.View())
	}
	return s.String()
}

func (m Model) renderHelp() string {
	if m.input.Active() {
		return helpStyle.Render(m.help.ShortHelpView([]key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}))
	}
	if m.seq.Running() {
		return helpStyle.Render(m.help.View(runningKeyMap{keys: m.keys}))
	}
	return helpStyle.Render(m.help.View(m.keys))
}

func runProgram(r runner.Runner, e program.Entry, logWriter *logstream.ChannelWriter) tea.Cmd {
	return func() tea.Msg {
		ctx := logstream.WithWriter(context.Background(), logWriter)
		outcome := r.Run(ctx, e)
		logWriter.Close()
		return runDoneMsg{outcome: outcome}
	}
}

func listenForLogs(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}

	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return logDoneMsg{}
		}
		return logLineMsg{line: line}
	}
}
