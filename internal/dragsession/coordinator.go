// Package dragsession glues pointer events and drop notifications to the
// autoscroll controller and the reorder resolver.
package dragsession

import (
	"time"

	"dragboard/internal/autoscroll"
	"dragboard/internal/hierarchy"
	"dragboard/internal/logging"
	"dragboard/internal/reorder"

	"github.com/sirupsen/logrus"
)

// Options configures a Coordinator. Hierarchy is required; every other field
// is optional.
type Options struct {
	// Hierarchy returns the current snapshot. It is read on every drop.
	Hierarchy func() *hierarchy.Hierarchy

	Viewport   autoscroll.Viewport
	Autoscroll autoscroll.Config

	OnMove   func(reorder.Move)
	OnInsert func(reorder.Insert)

	// OnDragChanged is told when a drag subject is attached (true) and when
	// its session ends (false).
	OnDragChanged func(d Drag, dragging bool)

	// AcceptItem may veto an item drop. receiver is nil for a list's
	// terminal target.
	AcceptItem func(dragged *hierarchy.Item, list *hierarchy.List, receiver *hierarchy.Item) bool
	// AcceptList may veto a list drop. receiver is nil for the terminal
	// list target.
	AcceptList func(dragged, receiver *hierarchy.List) bool

	Logger *logrus.Entry
	Now    func() time.Time
}

// Coordinator owns the autoscroll controller and the per-gesture Session.
type Coordinator struct {
	opts   Options
	scroll *autoscroll.Controller
	log    *logrus.Entry
	now    func() time.Time

	session *Session
}

// New builds a coordinator. A zero Autoscroll config falls back to
// autoscroll.DefaultConfig.
func New(opts Options) *Coordinator {
	cfg := opts.Autoscroll
	if cfg.IsZero() {
		cfg = autoscroll.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		opts:   opts,
		scroll: autoscroll.New(opts.Viewport, cfg),
		log:    log.WithField("component", "dragsession"),
		now:    now,
	}
}

// Autoscroll exposes the controller, mainly for hosts that render its state.
func (c *Coordinator) Autoscroll() *autoscroll.Controller { return c.scroll }

// Session returns the active gesture, or nil between gestures.
func (c *Coordinator) Session() *Session { return c.session }

// PointerDown opens a new session at p.
func (c *Coordinator) PointerDown(p autoscroll.Point) {
	if c.session != nil {
		c.endSession()
	}
	c.session = &Session{start: p, startedAt: c.now()}
	c.scroll.PointerDown(p)
}

// PointerMove forwards p to the autoscroll controller.
func (c *Coordinator) PointerMove(p autoscroll.Point) {
	if c.session != nil {
		c.session.last = p
		c.session.moves++
	}
	c.scroll.PointerMove(p)
}

// PointerUp closes the session. Drops for this gesture must be delivered
// before PointerUp.
func (c *Coordinator) PointerUp() {
	c.scroll.PointerUp()
	c.endSession()
}

// AnimationDone forwards the viewport's completion notification.
func (c *Coordinator) AnimationDone() {
	c.scroll.AnimationDone()
}

// BeginItemDrag attaches it as the subject of the current session.
func (c *Coordinator) BeginItemDrag(it *hierarchy.Item) {
	c.begin(Drag{Item: it})
}

// BeginListDrag attaches l as the subject of the current session.
func (c *Coordinator) BeginListDrag(l *hierarchy.List) {
	c.begin(Drag{List: l})
}

func (c *Coordinator) begin(d Drag) {
	if c.session == nil {
		c.session = &Session{startedAt: c.now()}
	}
	d.Start = c.session.start
	d.StartedAt = c.session.startedAt
	c.session.drag = d
	c.log.WithFields(logrus.Fields{"subject": d.Subject().String()}).Debug("drag started")
	if c.opts.OnDragChanged != nil {
		c.opts.OnDragChanged(d, true)
	}
}

func (c *Coordinator) endSession() {
	s := c.session
	c.session = nil
	if s == nil || s.drag.Subject() == SubjectNone {
		return
	}
	c.log.WithFields(logrus.Fields{
		"subject":  s.drag.Subject().String(),
		"moves":    s.moves,
		"duration": c.now().Sub(s.startedAt).String(),
	}).Debug("drag ended")
	if c.opts.OnDragChanged != nil {
		c.opts.OnDragChanged(s.drag, false)
	}
}

// DropItem delivers "dragged was dropped on receiver". It reports whether a
// callback was invoked.
func (c *Coordinator) DropItem(dragged, receiver *hierarchy.Item) bool {
	h := c.hierarchy()
	if c.opts.AcceptItem != nil {
		list, _ := h.ListOf(receiver)
		if !c.opts.AcceptItem(dragged, list, receiver) {
			c.log.Debug("item drop rejected")
			return false
		}
	}
	return c.dispatch(reorder.ResolveItemDrop(h, dragged, receiver))
}

// DropItemOnListEnd delivers a drop on list's terminal target.
func (c *Coordinator) DropItemOnListEnd(dragged *hierarchy.Item, list *hierarchy.List) bool {
	if c.opts.AcceptItem != nil && !c.opts.AcceptItem(dragged, list, nil) {
		c.log.Debug("item drop on list end rejected")
		return false
	}
	return c.dispatch(reorder.ResolveItemDropOnListEnd(c.hierarchy(), dragged, list))
}

// DropList delivers "dragged list was dropped on receiver list".
func (c *Coordinator) DropList(dragged, receiver *hierarchy.List) bool {
	if c.opts.AcceptList != nil && !c.opts.AcceptList(dragged, receiver) {
		c.log.Debug("list drop rejected")
		return false
	}
	return c.dispatch(reorder.ResolveListDrop(c.hierarchy(), dragged, receiver))
}

// DropListOnEnd delivers a drop on the terminal list target.
func (c *Coordinator) DropListOnEnd(dragged *hierarchy.List) bool {
	if c.opts.AcceptList != nil && !c.opts.AcceptList(dragged, nil) {
		c.log.Debug("list drop on end rejected")
		return false
	}
	return c.dispatch(reorder.ResolveListDropOnEnd(c.hierarchy(), dragged))
}

func (c *Coordinator) hierarchy() *hierarchy.Hierarchy {
	if c.opts.Hierarchy == nil {
		return nil
	}
	return c.opts.Hierarchy()
}

// dispatch routes in to exactly one callback.
func (c *Coordinator) dispatch(in reorder.Instruction) bool {
	if in == nil || !in.Valid() {
		c.log.WithField("instruction", in).Warn("dropping malformed instruction")
		return false
	}
	log := c.log.WithField("instruction", in)
	switch in := in.(type) {
	case reorder.Move:
		log.Debug("resolved move")
		if c.opts.OnMove == nil {
			return false
		}
		c.opts.OnMove(in)
		return true
	case reorder.Insert:
		log.Debug("resolved insert")
		if c.opts.OnInsert == nil {
			return false
		}
		c.opts.OnInsert(in)
		return true
	}
	return false
}
