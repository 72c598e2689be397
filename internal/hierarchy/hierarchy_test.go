package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateItem_ScansAllLists(t *testing.T) {
	a1, a2 := &Item{Payload: "a1"}, &Item{Payload: "a2"}
	b1 := &Item{Payload: "b1"}
	h := &Hierarchy{Lists: []*List{
		{Items: []*Item{a1, a2}},
		{Items: []*Item{b1}},
	}}

	pos, ok := h.LocateItem(b1)
	require.True(t, ok)
	assert.Equal(t, Position{List: 1, Item: 0}, pos)

	pos, ok = h.LocateItem(a2)
	require.True(t, ok)
	assert.Equal(t, Position{List: 0, Item: 1}, pos)

	_, ok = h.LocateItem(&Item{Payload: "a1"})
	assert.False(t, ok, "identity is by pointer, not payload")
	assert.Equal(t, 3, h.ItemCount())
}

func TestLocateList_Identity(t *testing.T) {
	l0, l1 := &List{}, &List{}
	h := &Hierarchy{Lists: []*List{l0, l1}}

	i, ok := h.LocateList(l1)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = h.LocateList(&List{})
	assert.False(t, ok)
}

func TestNilHierarchyIsEmpty(t *testing.T) {
	var h *Hierarchy
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0, h.ItemCount())
	_, ok := h.LocateItem(&Item{})
	assert.False(t, ok)
	_, ok = h.ListOf(&Item{})
	assert.False(t, ok)
}

func TestCollapsedOnlyForExpandable(t *testing.T) {
	assert.False(t, (&List{Kind: KindPlain}).Collapsed())
	assert.True(t, (&List{Kind: KindExpandable}).Collapsed())
	assert.False(t, (&List{Kind: KindExpandable, Expanded: true}).Collapsed())
	assert.Equal(t, "expandable", KindExpandable.String())
}
