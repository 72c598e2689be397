// Package board adapts a stored board snapshot to the hierarchy the drag
// engine reads, and maps hierarchy handles back to stored ids.
package board

import (
	"dragboard/internal/hierarchy"
	"dragboard/internal/model"
	"dragboard/internal/store"
)

// Board pairs a store snapshot with the hierarchy built from it. Handles are
// stable for the lifetime of a Board; a reload builds a new one.
type Board struct {
	Snapshot store.Board
	Tree     *hierarchy.Hierarchy

	listByID map[string]*hierarchy.List
	cardByID map[string]*hierarchy.Item
}

// Build creates one handle per list and card. Payloads are model.List and
// model.Card values.
func Build(snap store.Board) *Board {
	b := &Board{
		Snapshot: snap,
		Tree:     &hierarchy.Hierarchy{Lists: make([]*hierarchy.List, 0, len(snap.Lists))},
		listByID: map[string]*hierarchy.List{},
		cardByID: map[string]*hierarchy.Item{},
	}
	for _, l := range snap.Lists {
		cards := snap.CardsIn(l.ID)
		hl := &hierarchy.List{
			Payload:  l,
			Kind:     KindOf(l.Kind),
			Locked:   l.Locked,
			Expanded: l.Expanded,
			Items:    make([]*hierarchy.Item, 0, len(cards)),
		}
		for _, c := range cards {
			it := &hierarchy.Item{Payload: c, Locked: c.Locked}
			hl.Items = append(hl.Items, it)
			b.cardByID[c.ID] = it
		}
		b.Tree.Lists = append(b.Tree.Lists, hl)
		b.listByID[l.ID] = hl
	}
	return b
}

func (b *Board) List(id string) (*hierarchy.List, bool) {
	l, ok := b.listByID[id]
	return l, ok
}

func (b *Board) Card(id string) (*hierarchy.Item, bool) {
	it, ok := b.cardByID[id]
	return it, ok
}

// KindOf maps the stored list kind onto the hierarchy's closed set.
func KindOf(k model.ListKind) hierarchy.Kind {
	if k == model.ListKindExpandable {
		return hierarchy.KindExpandable
	}
	return hierarchy.KindPlain
}

// ListOf returns the stored list behind a handle. Drafts from NewListDraft
// report ok with an empty ID.
func ListOf(l *hierarchy.List) (model.List, bool) {
	if l == nil {
		return model.List{}, false
	}
	switch p := l.Payload.(type) {
	case model.List:
		return p, true
	case *model.List:
		if p != nil {
			return *p, true
		}
	}
	return model.List{}, false
}

// CardOf returns the stored card behind a handle.
func CardOf(it *hierarchy.Item) (model.Card, bool) {
	if it == nil {
		return model.Card{}, false
	}
	switch p := it.Payload.(type) {
	case model.Card:
		return p, true
	case *model.Card:
		if p != nil {
			return *p, true
		}
	}
	return model.Card{}, false
}

// NewCardDraft returns a foreign item carrying a card that does not exist
// yet. Dropping it produces an ItemInsert.
func NewCardDraft(title string) *hierarchy.Item {
	return &hierarchy.Item{Payload: model.Card{Title: title}}
}

// NewListDraft returns a foreign, empty list carrying a list draft.
func NewListDraft(title string, kind model.ListKind) *hierarchy.List {
	return &hierarchy.List{
		Payload:  model.List{Title: title, Kind: kind, Expanded: true},
		Kind:     KindOf(kind),
		Expanded: true,
	}
}
