package model

import "time"

type ListKind string

const (
	ListKindPlain      ListKind = "plain"
	ListKindExpandable ListKind = "expandable"
)

type List struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Kind  ListKind `json:"kind"`
	// Locked lists cannot be picked up, but cards can still be dropped into them.
	Locked   bool   `json:"locked"`
	Expanded bool   `json:"expanded"`
	Rank     string `json:"rank,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type Card struct {
	ID     string `json:"id"`
	ListID string `json:"listId"`
	Rank   string `json:"rank,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Locked      bool   `json:"locked"`

	CreatedAt time.Time `json:"createdAt"`
}

// ListView is the JSON shape of a list with its cards in display order.
type ListView struct {
	List
	Cards []Card `json:"cards"`
}
