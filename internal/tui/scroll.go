package tui

import (
	"time"

	"dragboard/internal/autoscroll"
	"dragboard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	frameInterval = 15 * time.Millisecond
	wheelStep     = 3
)

type frameMsg struct{}

// boardViewport exposes the board pane to the autoscroll controller. Offsets
// are rows in the stacked layout and columns in the columns layout.
type boardViewport struct{ m *appModel }

func (v boardViewport) Geometry() (autoscroll.Geometry, bool) { return v.m.scrollGeometry() }

// AnimateTo records the animation; frame ticks advance it from Update.
func (v boardViewport) AnimateTo(offset float64, d time.Duration, ease autoscroll.Easing) {
	a := autoscroll.NewAnimation(v.m.scrollPos, offset, d, ease, v.m.now())
	v.m.anim = &a
}

func (m *appModel) scrollGeometry() (autoscroll.Geometry, bool) {
	if m.width <= 0 || m.height <= 0 || m.board == nil {
		return autoscroll.Geometry{}, false
	}
	g := autoscroll.Geometry{Offset: m.scrollPos, MaxExtent: m.maxScroll()}
	x0, y0, x1, y1, marked := m.zoneBounds(zoneBoard)
	if m.layout == store.LayoutColumns {
		g.Start, g.End = 0, float64(m.width)
		if marked {
			g.Start, g.End = float64(x0), float64(x1+1)
		}
		return g, true
	}
	top := m.boardTop()
	g.Start, g.End = float64(top), float64(top+m.boardHeight())
	if marked {
		g.Start, g.End = float64(y0), float64(y1+1)
	}
	return g, true
}

func (m *appModel) maxScroll() float64 {
	if m.board == nil {
		return 0
	}
	if m.layout == store.LayoutColumns {
		return float64(max(0, columnsWidth(m.board.Tree.Len())-m.width))
	}
	return float64(max(0, stackedLineCount(m.board.Tree)-m.boardHeight()))
}

func (m *appModel) setScroll(v float64) {
	m.scrollPos = min(max(v, 0), m.maxScroll())
}

func (m *appModel) scrollOffset() int { return roundOffset(m.scrollPos) }

// stepAnimation advances the running animation to now. A finished animation
// is reported to the coordinator, which may start the next one.
func (m *appModel) stepAnimation() {
	if m.anim == nil {
		return
	}
	v, done := m.anim.At(m.now())
	m.setScroll(v)
	if !done {
		return
	}
	m.anim = nil
	m.coord.AnimationDone()
}

// frameCmd schedules the next animation frame when one is due.
func (m *appModel) frameCmd() tea.Cmd {
	if m.anim == nil || m.framePending {
		return nil
	}
	m.framePending = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *appModel) wheel(b tea.MouseButton) {
	switch b {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		m.setScroll(m.scrollPos - wheelStep)
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		m.setScroll(m.scrollPos + wheelStep)
	}
}
