package store

import (
	"slices"

	"dragboard/internal/model"
)

// Board is a read snapshot: lists in board order and each list's cards in
// display order. Reorder instructions carry indices into a Board.
type Board struct {
	Lists []model.List

	cards map[string][]model.Card
}

// NewBoard groups cards under their lists. Cards whose list is missing are
// dropped.
func NewBoard(lists []model.List, cards []model.Card) Board {
	ls := append([]model.List(nil), lists...)
	sortByEntry(ls, listEntry)
	b := Board{Lists: ls, cards: map[string][]model.Card{}}
	for _, l := range ls {
		b.cards[l.ID] = nil
	}
	for _, c := range cards {
		if _, ok := b.cards[c.ListID]; ok {
			b.cards[c.ListID] = append(b.cards[c.ListID], c)
		}
	}
	for id := range b.cards {
		sortByEntry(b.cards[id], cardEntry)
	}
	return b
}

// CardsIn returns the cards of listID in display order.
func (b Board) CardsIn(listID string) []model.Card {
	return b.cards[listID]
}

func (b Board) FindList(id string) (model.List, int, bool) {
	for i, l := range b.Lists {
		if l.ID == id {
			return l, i, true
		}
	}
	return model.List{}, -1, false
}

// FindCard returns the card and its list and card indices.
func (b Board) FindCard(id string) (c model.Card, list, index int, ok bool) {
	for li, l := range b.Lists {
		for ci, card := range b.cards[l.ID] {
			if card.ID == id {
				return card, li, ci, true
			}
		}
	}
	return model.Card{}, -1, -1, false
}

func (b Board) CardCount() int {
	n := 0
	for _, cs := range b.cards {
		n += len(cs)
	}
	return n
}

// Views is the board in its JSON shape.
func (b Board) Views() []model.ListView {
	out := make([]model.ListView, 0, len(b.Lists))
	for _, l := range b.Lists {
		cards := b.cards[l.ID]
		if cards == nil {
			cards = []model.Card{}
		}
		out = append(out, model.ListView{List: l, Cards: cards})
	}
	return out
}

func listEntry(l model.List) Entry { return Entry{ID: l.ID, Rank: l.Rank, CreatedAt: l.CreatedAt} }
func cardEntry(c model.Card) Entry { return Entry{ID: c.ID, Rank: c.Rank, CreatedAt: c.CreatedAt} }

func entries[T any](xs []T, entry func(T) Entry) []Entry {
	out := make([]Entry, len(xs))
	for i, x := range xs {
		out[i] = entry(x)
	}
	return out
}

func sortByEntry[T any](xs []T, entry func(T) Entry) {
	slices.SortStableFunc(xs, func(a, b T) int { return compareEntries(entry(a), entry(b)) })
}
