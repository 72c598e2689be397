package reorder

import (
	"fmt"

	"dragboard/internal/hierarchy"
)

// Instruction is the result of resolving one drop. The set is closed:
// ItemMove, ListMove, ItemInsert and ListInsert.
type Instruction interface {
	instruction()
	// Valid reports whether every index is non-negative and an insert carries
	// its element.
	Valid() bool
}

// Move relocates an element that already exists in the hierarchy.
type Move interface {
	Instruction
	NoOp() bool
	move()
}

// Insert adds an element that came from outside the hierarchy.
type Insert interface {
	Instruction
	insert()
}

// ItemMove relocates an item. Indices follow "remove, then insert at
// DestItem" ordering.
type ItemMove struct {
	SourceList int `json:"sourceList"`
	SourceItem int `json:"sourceItem"`
	DestList   int `json:"destList"`
	DestItem   int `json:"destItem"`
}

// ListMove relocates a list. Dest is the index after the list is removed.
type ListMove struct {
	Source int `json:"source"`
	Dest   int `json:"dest"`
}

// ItemInsert adds a foreign item at (DestList, DestItem).
type ItemInsert struct {
	Item     *hierarchy.Item `json:"-"`
	DestList int             `json:"destList"`
	DestItem int             `json:"destItem"`
}

// ListInsert adds a foreign list at Dest. Append is set for drops on the
// terminal list target; Dest is then the current list count.
type ListInsert struct {
	List   *hierarchy.List `json:"-"`
	Dest   int             `json:"dest"`
	Append bool            `json:"append,omitempty"`
}

func (ItemMove) instruction()   {}
func (ListMove) instruction()   {}
func (ItemInsert) instruction() {}
func (ListInsert) instruction() {}

func (ItemMove) move()     {}
func (ListMove) move()     {}
func (ItemInsert) insert() {}
func (ListInsert) insert() {}

func (m ItemMove) NoOp() bool {
	return m.SourceList == m.DestList && m.SourceItem == m.DestItem
}

func (m ListMove) NoOp() bool { return m.Source == m.Dest }

func (m ItemMove) Valid() bool {
	return m.SourceList >= 0 && m.SourceItem >= 0 && m.DestList >= 0 && m.DestItem >= 0
}

func (m ListMove) Valid() bool { return m.Source >= 0 && m.Dest >= 0 }

func (in ItemInsert) Valid() bool {
	return in.Item != nil && in.DestList >= 0 && in.DestItem >= 0
}

func (in ListInsert) Valid() bool { return in.List != nil && in.Dest >= 0 }

func (m ItemMove) String() string {
	return fmt.Sprintf("item (%d,%d) -> (%d,%d)", m.SourceList, m.SourceItem, m.DestList, m.DestItem)
}

func (m ListMove) String() string { return fmt.Sprintf("list %d -> %d", m.Source, m.Dest) }

func (in ItemInsert) String() string {
	return fmt.Sprintf("insert item at (%d,%d)", in.DestList, in.DestItem)
}

func (in ListInsert) String() string {
	if in.Append {
		return "append list"
	}
	return fmt.Sprintf("insert list at %d", in.Dest)
}
