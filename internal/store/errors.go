package store

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ErrStaleBoard reports an instruction whose indices do not fit the board it
// is applied to.
var ErrStaleBoard = errors.New("board changed since the instruction was resolved")

// ErrBadPayload reports an insert whose dragged handle does not carry a
// model.Card or model.List draft.
var ErrBadPayload = errors.New("unsupported insert payload")

// ErrLocked reports an attempt to move a locked list or card.
var ErrLocked = errors.New("locked")
