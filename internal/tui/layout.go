package tui

import (
	"fmt"
	"strings"

	"dragboard/internal/board"
	"dragboard/internal/hierarchy"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type targetKind int

const (
	targetNone targetKind = iota
	targetCard
	targetListHeader
	targetListEnd
	targetBoardEnd
)

// target is what sits under a board cell: a card, a list header, a list's
// terminal drop row, or the terminal list row of the board.
type target struct {
	kind targetKind
	list int
	card int
}

func (t target) String() string {
	switch t.kind {
	case targetCard:
		return fmt.Sprintf("card(%d,%d)", t.list, t.card)
	case targetListHeader:
		return fmt.Sprintf("header(%d)", t.list)
	case targetListEnd:
		return fmt.Sprintf("end(%d)", t.list)
	case targetBoardEnd:
		return "board-end"
	}
	return "none"
}

type renderState struct {
	draggedItem *hierarchy.Item
	draggedList *hierarchy.List
	dragging    bool
	hover       target
}

func (st renderState) paint(s string, t target, carried bool, base lipgloss.Style) string {
	switch {
	case carried:
		return styleDragged().Render(s)
	case st.dragging && t.kind != targetNone && t == st.hover:
		return styleDropTarget().Render(s)
	default:
		return base.Render(s)
	}
}

func headerText(h *hierarchy.List) string {
	l, _ := board.ListOf(h)
	g := glyphs()
	glyph := g.handle
	if h.Kind == hierarchy.KindExpandable {
		glyph = g.expanded
		if h.Collapsed() {
			glyph = g.collapsed
		}
	}
	s := fmt.Sprintf("%s %s (%d)", glyph, l.Title, len(h.Items))
	if h.Locked {
		s += " [locked]"
	}
	return s
}

func cardText(it *hierarchy.Item) string {
	c, _ := board.CardOf(it)
	g := glyphs()
	if it.Locked {
		return g.lockedDot + " " + c.Title + " [locked]"
	}
	return g.bullet + " " + c.Title
}

func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	return xansi.Truncate(s, w, glyphs().ellipsis)
}

func pad(s string, w int) string {
	s = fit(s, w)
	if n := w - xansi.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// renderStacked lays lists out top to bottom. rows[i] is the target of
// lines[i].
func renderStacked(h *hierarchy.Hierarchy, st renderState, width int) (lines []string, rows []target) {
	add := func(s string, t target, carried bool, base lipgloss.Style) {
		lines = append(lines, st.paint(pad(s, width), t, carried, base))
		rows = append(rows, t)
	}
	for li, l := range h.Lists {
		head := target{kind: targetListHeader, list: li}
		add(headerText(l), head, l == st.draggedList, styleListHeader())
		if !l.Collapsed() {
			for ci, it := range l.Items {
				add("   "+cardText(it), target{kind: targetCard, list: li, card: ci},
					it == st.draggedItem || l == st.draggedList, cardStyle(it))
			}
		}
		end := target{kind: targetListEnd, list: li}
		add("   "+glyphs().corner+" drop here", end, false, styleMuted())
		lines = append(lines, strings.Repeat(" ", max(width, 0)))
		rows = append(rows, end)
	}
	be := glyphs().boardEnd
	add(be+" drop list here "+be, target{kind: targetBoardEnd}, false, styleMuted())
	return lines, rows
}

func cardStyle(it *hierarchy.Item) lipgloss.Style {
	if it.Locked {
		return styleMuted()
	}
	return styleCard()
}

const (
	colWidth    = 24
	colGap      = 2
	endColWidth = 18
	minColRows  = 3
)

// column is one vertical strip of the columns layout in content space.
// list is -1 for the board's terminal column.
type column struct {
	x0, x1 int
	list   int
	rows   []target
}

// renderColumns lays lists side by side, each exactly height rows tall.
// Cards that do not fit collapse into a "+N more" row.
func renderColumns(h *hierarchy.Hierarchy, st renderState, height int) (lines []string, cols []column, width int) {
	height = max(height, minColRows)
	blocks := make([][]string, 0, len(h.Lists)+1)
	x := 0
	for li, l := range h.Lists {
		cells, rows := renderColumn(l, li, st, height)
		blocks = append(blocks, cells)
		cols = append(cols, column{x0: x, x1: x + colWidth, list: li, rows: rows})
		x += colWidth + colGap
	}

	endT := target{kind: targetBoardEnd}
	endCells := make([]string, height)
	endRows := make([]target, height)
	for r := range endCells {
		text := ""
		if r == 0 {
			text = glyphs().boardEnd + " drop list " + glyphs().boardEnd
		}
		endCells[r] = st.paint(pad(text, endColWidth), endT, false, styleMuted())
		endRows[r] = endT
	}
	blocks = append(blocks, endCells)
	cols = append(cols, column{x0: x, x1: x + endColWidth, list: -1, rows: endRows})
	width = x + endColWidth

	gap := strings.Repeat(" ", colGap)
	lines = make([]string, height)
	for r := range lines {
		var b strings.Builder
		for i, cells := range blocks {
			if i > 0 {
				b.WriteString(gap)
			}
			b.WriteString(cells[r])
		}
		lines[r] = b.String()
	}
	return lines, cols, width
}

func renderColumn(l *hierarchy.List, li int, st renderState, height int) ([]string, []target) {
	cells := make([]string, 0, height)
	rows := make([]target, 0, height)
	add := func(s string, t target, carried bool, base lipgloss.Style) {
		cells = append(cells, st.paint(pad(s, colWidth), t, carried, base))
		rows = append(rows, t)
	}

	head := target{kind: targetListHeader, list: li}
	end := target{kind: targetListEnd, list: li}
	carriedList := l == st.draggedList
	add(headerText(l), head, carriedList, styleListHeader())
	add(strings.Repeat(glyphs().hrule, colWidth), head, carriedList, styleMuted())

	if !l.Collapsed() {
		room := height - len(cells) - 1
		shown := len(l.Items)
		if shown > room {
			shown = max(room-1, 0)
		}
		for ci := 0; ci < shown; ci++ {
			it := l.Items[ci]
			add(cardText(it), target{kind: targetCard, list: li, card: ci},
				it == st.draggedItem || carriedList, cardStyle(it))
		}
		if hidden := len(l.Items) - shown; hidden > 0 && len(cells) < height-1 {
			add(fmt.Sprintf("%s +%d more", glyphs().ellipsis, hidden), end, false, styleMuted())
		}
	}
	if len(cells) < height {
		add(glyphs().corner+" drop here", end, false, styleMuted())
	}
	for len(cells) < height {
		add("", end, false, lipgloss.NewStyle())
	}
	return cells, rows
}

// cutColumns returns the width-wide window of lines starting at offset.
func cutColumns(lines []string, offset, width int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = pad(xansi.Cut(l, offset, offset+width), width)
	}
	return out
}

// listTitle is the stored title behind a hierarchy list handle.
func listTitle(l *hierarchy.List) string {
	v, _ := board.ListOf(l)
	return v.Title
}

func cardTitle(it *hierarchy.Item) string {
	v, _ := board.CardOf(it)
	return v.Title
}

// stackedLineCount is len(lines) of renderStacked without rendering.
func stackedLineCount(h *hierarchy.Hierarchy) int {
	n := 1
	for _, l := range h.Lists {
		n += 3
		if !l.Collapsed() {
			n += len(l.Items)
		}
	}
	return n
}

// columnsWidth is the content width of renderColumns for n lists.
func columnsWidth(n int) int { return n*(colWidth+colGap) + endColWidth }
