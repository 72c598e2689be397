// Package reorder turns "element A was dropped on B" into index pairs.
//
// Every resolution has the same shape: find the dragged element, find the
// receiver, correct the destination for the dragged element's own removal,
// emit. Callers apply a Move as "remove at source, then insert at dest".
// The functions are pure; they never mutate the hierarchy and never fail.
package reorder

import "dragboard/internal/hierarchy"

// ResolveItemDrop resolves dropping dragged onto the slot occupied by
// receiver.
func ResolveItemDrop(h *hierarchy.Hierarchy, dragged, receiver *hierarchy.Item) Instruction {
	dest, ok := h.LocateItem(receiver)
	if !ok {
		// The receiver is a rendered placeholder and should always be found.
		// Fall back to the end of the last list so the result stays usable.
		dest = tailPosition(h)
	}
	return resolveItem(h, dragged, dest)
}

// ResolveItemDropOnListEnd resolves dropping dragged on the terminal target of
// parent, past its last item.
func ResolveItemDropOnListEnd(h *hierarchy.Hierarchy, dragged *hierarchy.Item, parent *hierarchy.List) Instruction {
	li, ok := h.LocateList(parent)
	if !ok {
		return resolveItem(h, dragged, tailPosition(h))
	}
	return resolveItem(h, dragged, hierarchy.Position{List: li, Item: len(parent.Children())})
}

func resolveItem(h *hierarchy.Hierarchy, dragged *hierarchy.Item, dest hierarchy.Position) Instruction {
	src, ok := h.LocateItem(dragged)
	if !ok {
		// Nothing to remove first, so the receiver's index is already final.
		return ItemInsert{Item: dragged, DestList: dest.List, DestItem: dest.Item}
	}
	if src.List == dest.List {
		dest.Item = correctForRemoval(src.Item, dest.Item)
	}
	return ItemMove{
		SourceList: src.List,
		SourceItem: src.Item,
		DestList:   dest.List,
		DestItem:   dest.Item,
	}
}

// ResolveListDrop resolves dropping the dragged list onto the slot occupied by
// receiver.
func ResolveListDrop(h *hierarchy.Hierarchy, dragged, receiver *hierarchy.List) Instruction {
	dest, ok := h.LocateList(receiver)
	if !ok {
		dest = h.Len()
	}
	src, ok := h.LocateList(dragged)
	if !ok {
		return ListInsert{List: dragged, Dest: dest, Append: dest == h.Len()}
	}
	return ListMove{Source: src, Dest: correctForRemoval(src, dest)}
}

// ResolveListDropOnEnd resolves dropping dragged on the terminal list target.
// An existing list lands in the last slot; a foreign list is appended.
func ResolveListDropOnEnd(h *hierarchy.Hierarchy, dragged *hierarchy.List) Instruction {
	src, ok := h.LocateList(dragged)
	if !ok {
		return ListInsert{List: dragged, Dest: h.Len(), Append: true}
	}
	// The dragged list is already counted in Len, so the last slot needs no
	// further correction.
	return ListMove{Source: src, Dest: h.Len() - 1}
}

// correctForRemoval maps a destination index computed against the current
// order to one computed after the source element was removed.
func correctForRemoval(src, dest int) int {
	if dest > src {
		return dest - 1
	}
	return dest
}

func tailPosition(h *hierarchy.Hierarchy) hierarchy.Position {
	n := h.Len()
	if n == 0 {
		return hierarchy.Position{}
	}
	return hierarchy.Position{List: n - 1, Item: len(h.Lists[n-1].Children())}
}
