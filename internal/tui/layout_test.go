package tui

import (
	"fmt"
	"strings"
	"testing"

	"dragboard/internal/hierarchy"
	"dragboard/internal/model"
	"dragboard/internal/store"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree(cardsPerList ...int) *hierarchy.Hierarchy {
	h := &hierarchy.Hierarchy{}
	for li, n := range cardsPerList {
		l := &hierarchy.List{Payload: model.List{Title: fmt.Sprintf("L%d", li)}, Expanded: true}
		for ci := 0; ci < n; ci++ {
			l.Items = append(l.Items, &hierarchy.Item{Payload: model.Card{Title: fmt.Sprintf("c%d.%d", li, ci)}})
		}
		h.Lists = append(h.Lists, l)
	}
	return h
}

func TestRenderStacked_RowsMatchLines(t *testing.T) {
	h := tree(2, 0)
	h.Lists[1].Kind = hierarchy.KindExpandable
	h.Lists[1].Expanded = false

	lines, rows := renderStacked(h, renderState{}, 30)
	require.Len(t, lines, len(rows))
	assert.Equal(t, stackedLineCount(h), len(lines))
	assert.Equal(t, []target{
		{kind: targetListHeader, list: 0},
		{kind: targetCard, list: 0, card: 0},
		{kind: targetCard, list: 0, card: 1},
		{kind: targetListEnd, list: 0},
		{kind: targetListEnd, list: 0},
		{kind: targetListHeader, list: 1},
		{kind: targetListEnd, list: 1},
		{kind: targetListEnd, list: 1},
		{kind: targetBoardEnd},
	}, rows)
	assert.Contains(t, xansi.Strip(lines[5]), "▸ L1 (0)")
	for _, l := range lines {
		assert.Equal(t, 30, xansi.StringWidth(l))
	}
}

func TestRenderColumns_OverflowCollapsesToMore(t *testing.T) {
	lines, cols, width := renderColumns(tree(10, 1), renderState{}, 6)
	require.Len(t, lines, 6)
	require.Len(t, cols, 3)
	assert.Equal(t, columnsWidth(2), width)

	first := cols[0].rows
	assert.Equal(t, targetCard, first[2].kind)
	assert.Equal(t, targetCard, first[3].kind)
	assert.Equal(t, target{kind: targetListEnd, list: 0}, first[4])
	assert.Contains(t, xansi.Strip(lines[4]), "… +8 more")
	assert.Equal(t, -1, cols[2].list)
	assert.Equal(t, targetBoardEnd, cols[2].rows[0].kind)
}

func TestCutColumns_WindowsContent(t *testing.T) {
	lines, _, _ := renderColumns(tree(1, 1), renderState{}, 4)
	cut := cutColumns(lines, colWidth+colGap, 10)
	assert.True(t, strings.HasPrefix(xansi.Strip(cut[0]), "≡ L1"))
	for _, l := range cut {
		assert.Equal(t, 10, xansi.StringWidth(l))
	}
}

func TestHitAt_Columns(t *testing.T) {
	m, _ := newTestModel(t, 80, 20)
	send(m, keyMsg("l"))
	require.Equal(t, store.LayoutColumns, m.layout)

	assert.Equal(t, target{kind: targetCard, list: 1, card: 0}, m.hitAt(30, 4))
	assert.Equal(t, target{kind: targetListEnd, list: 1}, m.hitAt(30, 12))
	assert.Equal(t, target{}, m.hitAt(25, 4))
	assert.Equal(t, target{kind: targetBoardEnd}, m.hitAt(79, 4))
	assert.Equal(t, target{}, m.hitAt(30, 0))

	m.setScroll(1000)
	assert.Equal(t, float64(columnsWidth(3)-80), m.scrollPos)
	assert.Equal(t, target{kind: targetCard, list: 0, card: 2}, m.hitAt(0, 6))
}

func TestDropTarget_ListDragNormalisesByLayout(t *testing.T) {
	m, _ := newTestModel(t, 60, 20)
	send(m, press(2, 2))
	require.True(t, m.dragging)

	assert.Equal(t, target{kind: targetListHeader, list: 1}, m.dropTarget(target{kind: targetListEnd, list: 0}))
	assert.Equal(t, target{kind: targetBoardEnd}, m.dropTarget(target{kind: targetListEnd, list: 2}))
	assert.Equal(t, target{kind: targetListHeader, list: 2}, m.dropTarget(target{kind: targetCard, list: 2, card: 1}))

	m.layout = store.LayoutColumns
	assert.Equal(t, target{kind: targetListHeader, list: 0}, m.dropTarget(target{kind: targetListEnd, list: 0}))
}
