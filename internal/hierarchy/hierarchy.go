// Package hierarchy models the two-level structure the drag engine reads: an
// ordered set of lists, each holding an ordered set of items.
//
// Identity is pointer identity. A *List or *Item handed out by the owner must
// stay the same value for the whole drag gesture; the engine never copies,
// allocates or mutates them.
package hierarchy

// Kind is the closed set of list variants.
type Kind int

const (
	// KindPlain is an always-open list.
	KindPlain Kind = iota
	// KindExpandable is a list that can be collapsed to its header.
	KindExpandable
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindExpandable:
		return "expandable"
	default:
		return "unknown"
	}
}

// Item is a leaf element.
//
// Locked is a policy flag for whatever produces drag gestures. The resolver
// treats every item it is handed as eligible; a locked item can still receive
// drops at its position.
type Item struct {
	Payload any
	Locked  bool
}

// List is an ordered sequence of items plus list-level metadata.
type List struct {
	Payload  any
	Kind     Kind
	Locked   bool
	Expanded bool
	Items    []*Item
}

// Container is the only capability the resolver needs from a list variant.
type Container interface {
	Children() []*Item
}

var _ Container = (*List)(nil)

// Children returns the ordered items of the list.
func (l *List) Children() []*Item {
	if l == nil {
		return nil
	}
	return l.Items
}

// Collapsed reports whether an expandable list is currently folded.
func (l *List) Collapsed() bool {
	return l != nil && l.Kind == KindExpandable && !l.Expanded
}

// Hierarchy is the ordered sequence of lists.
type Hierarchy struct {
	Lists []*List
}

// Position addresses an item by list index and index within that list.
type Position struct {
	List int
	Item int
}

// Len returns the number of lists. A nil hierarchy is empty.
func (h *Hierarchy) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Lists)
}

// ItemCount returns the total number of items across all lists.
func (h *Hierarchy) ItemCount() int {
	if h == nil {
		return 0
	}
	n := 0
	for _, l := range h.Lists {
		n += len(l.Children())
	}
	return n
}

// LocateItem scans every list for it. The scan is linear in the total number
// of items; ok is false for a foreign item.
func (h *Hierarchy) LocateItem(it *Item) (Position, bool) {
	if h == nil || it == nil {
		return Position{}, false
	}
	for li, l := range h.Lists {
		if idx := indexOfItem(l.Children(), it); idx >= 0 {
			return Position{List: li, Item: idx}, true
		}
	}
	return Position{}, false
}

// LocateList returns the index of l, or ok=false for a foreign list.
func (h *Hierarchy) LocateList(l *List) (int, bool) {
	if h == nil || l == nil {
		return 0, false
	}
	for i := range h.Lists {
		if h.Lists[i] == l {
			return i, true
		}
	}
	return 0, false
}

// ListOf returns the list that owns it, if any.
func (h *Hierarchy) ListOf(it *Item) (*List, bool) {
	pos, ok := h.LocateItem(it)
	if !ok {
		return nil, false
	}
	return h.Lists[pos.List], true
}

func indexOfItem(items []*Item, it *Item) int {
	for i := range items {
		if items[i] == it {
			return i
		}
	}
	return -1
}
