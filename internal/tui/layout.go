package tui

type LayoutMode int

const (
	LayoutSingleColumn LayoutMode = iota
	LayoutTwoColumn
)

// Layout splits the content area between the program list and the logs.
type Layout struct {
	Mode       LayoutMode
	Width      int
	Height     int
	LeftWidth  int
	RightWidth int
}

const (
	minWidthTwoColumn = 60
	wideTerminalWidth = 101

	mediumLeftPercent = 55
	wideLeftPercent   = 50

	panelBorderWidth  = 2 // left + right border
	logPanelOverhead  = 2 // top + bottom border
	listPanelOverhead = 6 // border(2) + progress(2) + blank(1) + spare(1)
	listPanelPadding  = 4 // border(2) + padding(2)
	addInputHeight    = 3 // blank + prompt + error
)

func NewLayout(width, height int) Layout {
	l := Layout{Mode: LayoutSingleColumn, Width: width, Height: height}
	if width <= 0 {
		return l
	}
	if width < minWidthTwoColumn {
		l.LeftWidth = width
		return l
	}

	percent := mediumLeftPercent
	if width >= wideTerminalWidth {
		percent = wideLeftPercent
	}

	l.Mode = LayoutTwoColumn
	l.LeftWidth = width * percent / 100
	l.RightWidth = width - l.LeftWidth
	return l
}

func (l Layout) IsTwoColumn() bool {
	return l.Mode == LayoutTwoColumn
}

// PanelHeight is the outer height of both panels, leaving room for help.
func (l Layout) PanelHeight() int {
	return max(l.Height-3, 3)
}

// ListViewportSize is the area inside the list panel for program rows.
func (l Layout) ListViewportSize(showLogs bool) (width, height int) {
	width = l.LeftWidth - listPanelPadding
	if !showLogs {
		width = l.LeftWidth + l.RightWidth - listPanelPadding
	}
	return max(width, 10), max(l.PanelHeight()-listPanelOverhead, 3)
}

// LogViewportSize is the area inside the logs panel.
func (l Layout) LogViewportSize() (width, height int) {
	return max(l.RightWidth-panelBorderWidth, 10), max(l.PanelHeight()-logPanelOverhead, 1)
}
