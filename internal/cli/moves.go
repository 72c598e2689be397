package cli

import (
	"context"
	"errors"
	"fmt"

	"dragboard/internal/board"
	"dragboard/internal/hierarchy"
	"dragboard/internal/reorder"
	"dragboard/internal/store"
)

var errNoDestination = errors.New("a destination is required")

// applyDrop resolves a scripted drop against the stored board and persists
// it. created is the stored card or list for inserts and nil for moves.
func applyDrop(ctx context.Context, s *store.Store, resolve func(b *board.Board) (reorder.Instruction, error)) (res moveResult, created any, err error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return moveResult{}, nil, err
	}
	in, err := resolve(board.Build(snap))
	if err != nil {
		return moveResult{}, nil, err
	}
	if in == nil || !in.Valid() {
		return moveResult{}, nil, fmt.Errorf("unresolvable drop: %v", in)
	}

	switch in := in.(type) {
	case reorder.ItemInsert:
		created, err = s.ApplyItemInsert(ctx, snap, in)
	case reorder.ListInsert:
		created, err = s.ApplyListInsert(ctx, snap, in)
	default:
		err = s.Apply(ctx, snap, in)
	}
	if err != nil {
		return moveResult{}, nil, err
	}

	after, err := s.Snapshot(ctx)
	if err != nil {
		return moveResult{}, nil, err
	}
	return moveResult{Instruction: fmt.Sprint(in), Board: boardView(after.Views())}, created, nil
}

func cardHandle(b *board.Board, id string) (*hierarchy.Item, error) {
	it, ok := b.Card(id)
	if !ok {
		return nil, store.NotFoundError{Kind: "card", ID: id}
	}
	return it, nil
}

func listHandle(b *board.Board, id string) (*hierarchy.List, error) {
	l, ok := b.List(id)
	if !ok {
		return nil, store.NotFoundError{Kind: "list", ID: id}
	}
	return l, nil
}

// dropItem resolves dragged onto the card onto, or onto the end of list
// endOf. Exactly one of the two must be set.
func dropItem(b *board.Board, dragged *hierarchy.Item, onto, endOf string) (reorder.Instruction, error) {
	switch {
	case onto != "" && endOf != "":
		return nil, errors.New("--onto and --end-of are mutually exclusive")
	case onto != "":
		recv, err := cardHandle(b, onto)
		if err != nil {
			return nil, err
		}
		return reorder.ResolveItemDrop(b.Tree, dragged, recv), nil
	case endOf != "":
		l, err := listHandle(b, endOf)
		if err != nil {
			return nil, err
		}
		return reorder.ResolveItemDropOnListEnd(b.Tree, dragged, l), nil
	}
	return nil, errNoDestination
}

// dropList resolves dragged onto the list onto, or past the last list.
func dropList(b *board.Board, dragged *hierarchy.List, onto string, end bool) (reorder.Instruction, error) {
	switch {
	case onto != "" && end:
		return nil, errors.New("--onto and --end are mutually exclusive")
	case onto != "":
		recv, err := listHandle(b, onto)
		if err != nil {
			return nil, err
		}
		return reorder.ResolveListDrop(b.Tree, dragged, recv), nil
	case end:
		return reorder.ResolveListDropOnEnd(b.Tree, dragged), nil
	}
	return nil, errNoDestination
}
