package dragsession

import (
	"time"

	"dragboard/internal/autoscroll"
	"dragboard/internal/hierarchy"
)

// Subject says what a drag carries.
type Subject int

const (
	SubjectNone Subject = iota
	SubjectItem
	SubjectList
)

func (s Subject) String() string {
	switch s {
	case SubjectItem:
		return "item"
	case SubjectList:
		return "list"
	default:
		return "none"
	}
}

// Drag describes the element being dragged. At most one of Item and List is
// set. Either may be foreign to the hierarchy.
type Drag struct {
	Item      *hierarchy.Item
	List      *hierarchy.List
	Start     autoscroll.Point
	StartedAt time.Time
}

func (d Drag) Subject() Subject {
	switch {
	case d.Item != nil:
		return SubjectItem
	case d.List != nil:
		return SubjectList
	default:
		return SubjectNone
	}
}

// Session is the state of one pointer gesture, from PointerDown to
// PointerUp.
type Session struct {
	drag      Drag
	start     autoscroll.Point
	last      autoscroll.Point
	startedAt time.Time
	moves     int
}

// Drag returns the session's subject; Subject() is SubjectNone until a
// Begin*Drag call.
func (s *Session) Drag() Drag { return s.drag }

// Last returns the most recent pointer position seen by the session.
func (s *Session) Last() autoscroll.Point {
	if s.moves == 0 {
		return s.start
	}
	return s.last
}
