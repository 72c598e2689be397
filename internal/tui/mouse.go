package tui

import (
	"dragboard/internal/autoscroll"
	"dragboard/internal/board"
	"dragboard/internal/dragsession"
	"dragboard/internal/hierarchy"
	"dragboard/internal/model"
	"dragboard/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	newCardTitle = "New card"
	newListTitle = "New list"
)

// pointAt maps a cell to the centre of that cell so edge zones are
// symmetric at both ends of the board.
func pointAt(x, y int) autoscroll.Point {
	return autoscroll.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

func (m *appModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pressAt(msg)
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
			m.wheel(msg.Button)
		}
	case tea.MouseActionMotion:
		if m.coord.Session() == nil {
			return
		}
		m.coord.PointerMove(pointAt(msg.X, msg.Y))
		m.hover = m.dropTarget(m.hitAt(msg.X, msg.Y))
	case tea.MouseActionRelease:
		m.releaseAt(msg)
	}
}

func (m *appModel) pressAt(msg tea.MouseMsg) {
	t := m.hitAt(msg.X, msg.Y)
	m.press = &pressInfo{x: msg.X, y: msg.Y, at: t}
	m.coord.PointerDown(pointAt(msg.X, msg.Y))

	switch {
	case m.inZone(zoneChipCard, msg):
		m.coord.BeginItemDrag(board.NewCardDraft(newCardTitle))
	case m.inZone(zoneChipList, msg):
		m.coord.BeginListDrag(board.NewListDraft(newListTitle, model.ListKindPlain))
	case t.kind == targetCard:
		if it := m.itemAt(t); it != nil && !it.Locked {
			m.coord.BeginItemDrag(it)
		}
	case t.kind == targetListHeader:
		if l := m.listAt(t); l != nil && !l.Locked {
			m.coord.BeginListDrag(l)
		}
	}
	m.hover = m.dropTarget(t)
}

func (m *appModel) releaseAt(msg tea.MouseMsg) {
	defer func() {
		m.coord.PointerUp()
		m.press = nil
		m.hover = target{}
	}()
	s := m.coord.Session()
	if s == nil {
		return
	}
	raw := m.hitAt(msg.X, msg.Y)
	if p := m.press; p != nil && p.x == msg.X && p.y == msg.Y && p.at == raw {
		m.click(raw)
		return
	}

	d := s.Drag()
	t := m.dropTarget(raw)
	switch d.Subject() {
	case dragsession.SubjectItem:
		switch t.kind {
		case targetCard:
			if receiver := m.itemAt(t); receiver != nil {
				m.coord.DropItem(d.Item, receiver)
			}
		case targetListEnd:
			if l := m.listAt(t); l != nil {
				m.coord.DropItemOnListEnd(d.Item, l)
			}
		}
	case dragsession.SubjectList:
		switch t.kind {
		case targetListHeader:
			if receiver := m.listAt(t); receiver != nil {
				m.coord.DropList(d.List, receiver)
			}
		case targetBoardEnd:
			m.coord.DropListOnEnd(d.List)
		}
	}
}

// click handles a press and release on the same cell. Expandable list
// headers toggle; everything else is ignored.
func (m *appModel) click(t target) {
	if t.kind != targetListHeader {
		return
	}
	l := m.listAt(t)
	if l == nil || l.Kind != hierarchy.KindExpandable {
		return
	}
	lv, ok := board.ListOf(l)
	if !ok {
		return
	}
	if err := m.store.SetExpanded(m.ctx, lv.ID, !l.Expanded); err != nil {
		m.setError(err)
		return
	}
	m.reload()
}

// dropTarget maps the cell under the pointer to what a release there would
// drop on for the current drag. Item drags treat a header as the list's
// end. List drags treat anything inside a list as that list; in the stacked
// layout a list's trailing rows mean "before the next list".
func (m *appModel) dropTarget(raw target) target {
	if !m.dragging {
		return target{}
	}
	switch m.drag.Subject() {
	case dragsession.SubjectItem:
		switch raw.kind {
		case targetListHeader:
			return target{kind: targetListEnd, list: raw.list}
		case targetBoardEnd:
			return target{}
		}
		return raw
	case dragsession.SubjectList:
		switch raw.kind {
		case targetCard:
			return target{kind: targetListHeader, list: raw.list}
		case targetListEnd:
			if m.layout == store.LayoutColumns {
				return target{kind: targetListHeader, list: raw.list}
			}
			if raw.list+1 < m.board.Tree.Len() {
				return target{kind: targetListHeader, list: raw.list + 1}
			}
			return target{kind: targetBoardEnd}
		}
		return raw
	}
	return target{}
}

// hitAt returns the board target under screen cell (x, y).
func (m *appModel) hitAt(x, y int) target {
	top, h := m.boardTop(), m.boardHeight()
	if m.board == nil || y < top || y >= top+h || x < 0 || x >= m.width {
		return target{}
	}
	row := y - top
	if m.layout == store.LayoutColumns {
		_, cols, _ := renderColumns(m.board.Tree, renderState{}, h)
		cx := x + m.scrollOffset()
		for _, c := range cols {
			if cx < c.x0 || cx >= c.x1 {
				continue
			}
			if row < len(c.rows) {
				return c.rows[row]
			}
			if c.list < 0 {
				return target{kind: targetBoardEnd}
			}
			return target{kind: targetListEnd, list: c.list}
		}
		return target{}
	}
	_, rows := renderStacked(m.board.Tree, renderState{}, m.width)
	if line := row + m.scrollOffset(); line < len(rows) {
		return rows[line]
	}
	return target{}
}

func (m *appModel) listAt(t target) *hierarchy.List {
	if t.list < 0 || t.list >= m.board.Tree.Len() {
		return nil
	}
	return m.board.Tree.Lists[t.list]
}

func (m *appModel) itemAt(t target) *hierarchy.Item {
	l := m.listAt(t)
	if l == nil || t.card < 0 || t.card >= len(l.Items) {
		return nil
	}
	return l.Items[t.card]
}
