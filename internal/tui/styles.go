package tui

import "github.com/charmbracelet/lipgloss"

var (
	green  = lipgloss.Color("#00FF00")
	yellow = lipgloss.Color("#FFFF00")
	red    = lipgloss.Color("#FF0000")
	cyan   = lipgloss.Color("#00FFFF")
	gray   = lipgloss.Color("#808080")

	FocusedBorderColor   = lipgloss.Color("14")
	UnfocusedBorderColor = lipgloss.Color("8")

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cyan).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(green)

	skippedStyle = lipgloss.NewStyle().
			Foreground(gray)

	runningStyle = lipgloss.NewStyle().
			Foreground(yellow)

	cursorStyle = lipgloss.NewStyle().
			Foreground(cyan)

	pendingStyle = lipgloss.NewStyle().
			Foreground(gray).
			Faint(true)

	failedStyle = lipgloss.NewStyle().
			Foreground(red)

	kindStyle = lipgloss.NewStyle().
			Foreground(gray).
			Faint(true)

	leaderStyle = lipgloss.NewStyle().
			Foreground(gray).
			Faint(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1)

	emptyListStyle = lipgloss.NewStyle().
			Foreground(gray).
			Italic(true)

	inputLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cyan)

	inputErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6666"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(gray).
			MarginTop(1)

	logLineStyle = lipgloss.NewStyle().
			Foreground(gray).
			PaddingLeft(2)

	progressFilledStyle = lipgloss.NewStyle().
				Foreground(cyan)

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(gray).
				Faint(true)

	progressTextStyle = lipgloss.NewStyle().
				Foreground(cyan)

	noticeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	noticeMessageStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	noticeOutputHeaderStyle = lipgloss.NewStyle().
				Foreground(gray).
				Italic(true)

	noticeOutputStyle = lipgloss.NewStyle().
				Foreground(gray).
				PaddingLeft(2).
				Faint(true)

	noticeHintStyle = lipgloss.NewStyle().
			Foreground(gray).
			Faint(true).
			MarginTop(1)

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			MarginBottom(1)

	summarySuccessStyle = summaryBoxStyle.
				BorderForeground(green).
				Foreground(green).
				Bold(true)

	summaryFailureStyle = summaryBoxStyle.
				BorderForeground(red).
				Foreground(red).
				Bold(true)

	summaryStatStyle = lipgloss.NewStyle().
				Foreground(gray)

	summaryBarStyle = lipgloss.NewStyle().
			Foreground(cyan)

	summaryBarEmptyStyle = lipgloss.NewStyle().
				Foreground(gray).
				Faint(true)

	appContainerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)
