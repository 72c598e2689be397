// Package autoscroll scrolls a viewport while a drag holds the pointer near
// one of its edges.
//
// The controller is driven entirely by the host's event loop: pointer
// notifications and animation completions. At most one scroll animation is in
// flight; a completion re-runs the edge test while the pointer is still down,
// which keeps the viewport moving at a capped rate until the pointer leaves
// the edge zone, is released, or the scroll reaches an extent.
package autoscroll

import "time"

// Geometry describes a scrollable viewport along the scroll axis, in the same
// global coordinate space as pointer positions.
type Geometry struct {
	Start     float64
	End       float64
	Offset    float64
	MinExtent float64
	MaxExtent float64
}

// Viewport is the host's scrollable region.
type Viewport interface {
	// Geometry returns ok=false while the viewport is not laid out yet.
	Geometry() (g Geometry, ok bool)
	// AnimateTo starts moving the scroll offset to offset over d. The host
	// must call Controller.AnimationDone once the animation finishes. Calling
	// it before AnimateTo returns is allowed.
	AnimateTo(offset float64, d time.Duration, ease Easing)
}

// State is the controller's coarse state.
type State int

const (
	StateIdle State = iota
	StateTracking
	StateAnimating
)

func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateAnimating:
		return "animating"
	default:
		return "idle"
	}
}

// PointerState is the transient pointer record owned by a controller.
type PointerState struct {
	Down      bool
	Last      *Point
	Scrolling bool
}

// Controller implements the edge-scroll state machine for one viewport.
// It is not safe for concurrent use; all calls must come from the host's
// event loop.
type Controller struct {
	cfg Config
	vp  Viewport

	ptr PointerState

	// inAnimate is set while vp.AnimateTo runs; a completion reported during
	// that window is recorded in doneEarly and handled by run.
	inAnimate bool
	doneEarly bool
}

// New returns an idle controller for vp.
func New(vp Viewport, cfg Config) *Controller {
	return &Controller{cfg: cfg, vp: vp}
}

// Config returns the controller's tuning.
func (c *Controller) Config() Config { return c.cfg }

// Pointer returns a copy of the pointer state.
func (c *Controller) Pointer() PointerState {
	out := c.ptr
	if c.ptr.Last != nil {
		p := *c.ptr.Last
		out.Last = &p
	}
	return out
}

// State reports Idle, Tracking or Animating. A released pointer is Idle even
// while its last animation is still finishing.
func (c *Controller) State() State {
	switch {
	case !c.ptr.Down:
		return StateIdle
	case c.ptr.Scrolling:
		return StateAnimating
	default:
		return StateTracking
	}
}

// PointerDown starts tracking at p.
func (c *Controller) PointerDown(p Point) {
	c.ptr.Down = true
	c.ptr.Last = &p
}

// PointerMove records p and, when no animation is in flight, runs the edge
// test. Moves while the pointer is up are ignored.
func (c *Controller) PointerMove(p Point) {
	if !c.ptr.Down {
		return
	}
	c.ptr.Last = &p
	if c.ptr.Scrolling {
		return
	}
	c.run()
}

// PointerUp clears the pointer. An in-flight animation is left to finish but
// its completion will not start another one.
func (c *Controller) PointerUp() {
	c.ptr.Down = false
	c.ptr.Last = nil
}

// AnimationDone is the host's completion notification for the animation most
// recently started through Viewport.AnimateTo.
func (c *Controller) AnimationDone() {
	if !c.ptr.Scrolling {
		return
	}
	if c.inAnimate {
		c.doneEarly = true
		return
	}
	c.ptr.Scrolling = false
	c.run()
}

// run performs one edge test and starts at most one animation. A completion
// reported before AnimateTo returns only clears Scrolling; the next move or
// completion runs the edge test again, so one event never scrolls more than
// one step.
func (c *Controller) run() {
	if !c.ptr.Down || c.ptr.Last == nil || c.ptr.Scrolling || c.vp == nil {
		return
	}
	g, ok := c.vp.Geometry()
	if !ok {
		// Not laid out yet; the next move or completion retries.
		return
	}
	target, ok := c.cfg.Target(g, *c.ptr.Last)
	if !ok {
		return
	}

	c.ptr.Scrolling = true
	c.inAnimate = true
	c.vp.AnimateTo(target, c.cfg.Duration, c.cfg.easing())
	c.inAnimate = false

	if c.doneEarly {
		c.doneEarly = false
		c.ptr.Scrolling = false
	}
}
