package reorder

import (
	"fmt"
	"testing"

	"dragboard/internal/hierarchy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	h                          *hierarchy.Hierarchy
	listA, listB               *hierarchy.List
	item1, item2, item3, item4 *hierarchy.Item
}

// newFixture builds [A:[1,2,3], B:[4]].
func newFixture() fixture {
	f := fixture{
		item1: &hierarchy.Item{Payload: "1"},
		item2: &hierarchy.Item{Payload: "2"},
		item3: &hierarchy.Item{Payload: "3"},
		item4: &hierarchy.Item{Payload: "4"},
	}
	f.listA = &hierarchy.List{Payload: "A", Items: []*hierarchy.Item{f.item1, f.item2, f.item3}}
	f.listB = &hierarchy.List{Payload: "B", Items: []*hierarchy.Item{f.item4}}
	f.h = &hierarchy.Hierarchy{Lists: []*hierarchy.List{f.listA, f.listB}}
	return f
}

func TestResolveItemDrop_Scenario(t *testing.T) {
	f := newFixture()

	got := ResolveItemDrop(f.h, f.item1, f.item3)
	assert.Equal(t, ItemMove{SourceList: 0, SourceItem: 0, DestList: 0, DestItem: 1}, got)

	got = ResolveItemDrop(f.h, f.item4, f.item2)
	assert.Equal(t, ItemMove{SourceList: 1, SourceItem: 0, DestList: 0, DestItem: 1}, got)

	fresh := &hierarchy.Item{Payload: "new"}
	got = ResolveItemDrop(f.h, fresh, f.item4)
	assert.Equal(t, ItemInsert{Item: fresh, DestList: 1, DestItem: 0}, got)
}

func TestResolveItemDrop_SelfDropIsNoOpMove(t *testing.T) {
	f := newFixture()
	for _, it := range []*hierarchy.Item{f.item1, f.item2, f.item3, f.item4} {
		got := ResolveItemDrop(f.h, it, it)
		mv, ok := got.(ItemMove)
		require.True(t, ok, "self drop must stay a move, got %T", got)
		assert.True(t, mv.NoOp(), "self drop: %v", mv)
	}
}

func TestResolveItemDrop_SameListForwardShiftsByOne(t *testing.T) {
	items := make([]*hierarchy.Item, 6)
	for i := range items {
		items[i] = &hierarchy.Item{Payload: i}
	}
	h := &hierarchy.Hierarchy{Lists: []*hierarchy.List{{Items: items}}}

	for idx := 0; idx+2 < len(items); idx++ {
		got := ResolveItemDrop(h, items[idx], items[idx+2]).(ItemMove)
		assert.Equal(t, idx+1, got.DestItem, "from %d onto %d", idx, idx+2)
	}
	// Backwards moves need no correction.
	got := ResolveItemDrop(h, items[4], items[1]).(ItemMove)
	assert.Equal(t, 1, got.DestItem)
}

func TestResolveItemDrop_CrossListKeepsIndex(t *testing.T) {
	f := newFixture()
	got := ResolveItemDrop(f.h, f.item3, f.item4).(ItemMove)
	assert.Equal(t, 0, got.DestItem)
	assert.Equal(t, 1, got.DestList)
}

func TestResolveItemDropOnListEnd(t *testing.T) {
	f := newFixture()

	// Same list: len(A)=3, corrected to 2 (the last slot after removal).
	got := ResolveItemDropOnListEnd(f.h, f.item1, f.listA)
	assert.Equal(t, ItemMove{SourceList: 0, SourceItem: 0, DestList: 0, DestItem: 2}, got)

	// Other list: past the end, uncorrected.
	got = ResolveItemDropOnListEnd(f.h, f.item2, f.listB)
	assert.Equal(t, ItemMove{SourceList: 0, SourceItem: 1, DestList: 1, DestItem: 1}, got)

	fresh := &hierarchy.Item{}
	got = ResolveItemDropOnListEnd(f.h, fresh, f.listA)
	assert.Equal(t, ItemInsert{Item: fresh, DestList: 0, DestItem: 3}, got)

	// Empty list.
	empty := &hierarchy.List{}
	f.h.Lists = append(f.h.Lists, empty)
	got = ResolveItemDropOnListEnd(f.h, f.item4, empty)
	assert.Equal(t, ItemMove{SourceList: 1, SourceItem: 0, DestList: 2, DestItem: 0}, got)
}

func TestResolveListDrop(t *testing.T) {
	l := []*hierarchy.List{{}, {}, {}, {}}
	h := &hierarchy.Hierarchy{Lists: l}

	assert.Equal(t, ListMove{Source: 0, Dest: 1}, ResolveListDrop(h, l[0], l[2]))
	assert.Equal(t, ListMove{Source: 3, Dest: 1}, ResolveListDrop(h, l[3], l[1]))
	assert.Equal(t, ListMove{Source: 2, Dest: 2}, ResolveListDrop(h, l[2], l[2]))

	fresh := &hierarchy.List{}
	assert.Equal(t, ListInsert{List: fresh, Dest: 1}, ResolveListDrop(h, fresh, l[1]))
}

func TestResolveListDropOnEnd(t *testing.T) {
	l := []*hierarchy.List{{}, {}, {}}
	h := &hierarchy.Hierarchy{Lists: l}

	assert.Equal(t, ListMove{Source: 0, Dest: 2}, ResolveListDropOnEnd(h, l[0]))

	last := ResolveListDropOnEnd(h, l[2]).(ListMove)
	assert.True(t, last.NoOp(), "dropping the last list on the end target is idempotent")

	fresh := &hierarchy.List{}
	assert.Equal(t, ListInsert{List: fresh, Dest: 3, Append: true}, ResolveListDropOnEnd(h, fresh))
}

func TestResolve_NeverInvalid(t *testing.T) {
	f := newFixture()
	var empty *hierarchy.Hierarchy
	foreign := &hierarchy.Item{}
	foreignList := &hierarchy.List{}

	cases := []Instruction{
		ResolveItemDrop(empty, foreign, foreign),
		ResolveItemDrop(f.h, foreign, &hierarchy.Item{}),
		ResolveItemDrop(f.h, f.item1, &hierarchy.Item{}),
		ResolveItemDropOnListEnd(f.h, f.item1, foreignList),
		ResolveItemDropOnListEnd(empty, foreign, foreignList),
		ResolveListDrop(empty, foreignList, foreignList),
		ResolveListDrop(f.h, f.listA, foreignList),
		ResolveListDropOnEnd(empty, foreignList),
	}
	for i, in := range cases {
		assert.True(t, in.Valid(), "case %d: %v", i, in)
	}
}

// Dropping an item on a receiver must leave it directly in front of the
// receiver once the move is applied as remove-then-insert.
func TestResolveItemDrop_AppliedLandsBeforeReceiver(t *testing.T) {
	build := func() (*hierarchy.Hierarchy, []*hierarchy.Item) {
		var all []*hierarchy.Item
		h := &hierarchy.Hierarchy{}
		for li, n := range []int{4, 1, 3} {
			l := &hierarchy.List{Payload: li}
			for i := 0; i < n; i++ {
				it := &hierarchy.Item{Payload: fmt.Sprintf("%d.%d", li, i)}
				l.Items = append(l.Items, it)
				all = append(all, it)
			}
			h.Lists = append(h.Lists, l)
		}
		return h, all
	}

	h, all := build()
	for _, dragged := range all {
		for _, receiver := range all {
			if dragged == receiver {
				continue
			}
			in := ResolveItemDrop(h, dragged, receiver)
			out := Apply(h, in)

			dp, ok := out.LocateItem(dragged)
			require.True(t, ok)
			rp, ok := out.LocateItem(receiver)
			require.True(t, ok)
			assert.Equal(t, rp.List, dp.List, "%v onto %v", dragged.Payload, receiver.Payload)
			assert.Equal(t, rp.Item-1, dp.Item, "%v onto %v", dragged.Payload, receiver.Payload)
			assert.Equal(t, h.ItemCount(), out.ItemCount())
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	f := newFixture()
	before := append([]*hierarchy.Item(nil), f.listA.Items...)

	out := Apply(f.h, ResolveItemDropOnListEnd(f.h, f.item1, f.listB))

	assert.Equal(t, before, f.listA.Items)
	assert.Len(t, out.Lists[0].Items, 2)
	assert.Equal(t, f.item1, out.Lists[1].Items[1])
}

func TestApply_Lists(t *testing.T) {
	l := []*hierarchy.List{{Payload: "a"}, {Payload: "b"}, {Payload: "c"}}
	h := &hierarchy.Hierarchy{Lists: l}

	out := Apply(h, ResolveListDropOnEnd(h, l[0]))
	payloads := func(h *hierarchy.Hierarchy) []any {
		var ps []any
		for _, l := range h.Lists {
			ps = append(ps, l.Payload)
		}
		return ps
	}
	assert.Equal(t, []any{"b", "c", "a"}, payloads(out))

	fresh := &hierarchy.List{Payload: "d"}
	out = Apply(h, ResolveListDrop(h, fresh, l[1]))
	assert.Equal(t, []any{"a", "d", "b", "c"}, payloads(out))
}
