package autoscroll

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Axis is the scroll axis of a viewport.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseAxis accepts "vertical" (or "") and "horizontal".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	default:
		return Vertical, fmt.Errorf("unknown scroll axis: %q", s)
	}
}

// Coordinate returns the component of p along the axis.
func (a Axis) Coordinate(p Point) float64 {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}

// Point is a pointer position in the host's global coordinate space.
type Point struct {
	X, Y float64
}

// Easing maps animation progress in [0,1] to offset progress in [0,1].
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// Config holds the tunables of the edge test and the animation.
type Config struct {
	Axis Axis
	// EdgeZone is the width of the band at each viewport edge that triggers
	// scrolling.
	EdgeZone float64
	// OverdragFloor is the minimum overdrag used to size a step, so the
	// pointer entering the zone already scrolls at a useful speed.
	OverdragFloor   float64
	Step            float64
	OverdragDivisor float64
	// Duration of one scroll animation. It is also the minimum interval
	// between two scroll steps.
	Duration time.Duration
	Easing   Easing
}

// DefaultConfig returns the stock tuning for pixel-based viewports.
func DefaultConfig() Config {
	return Config{
		Axis:            Vertical,
		EdgeZone:        20,
		OverdragFloor:   20,
		Step:            1.5,
		OverdragDivisor: 5,
		Duration:        30 * time.Millisecond,
		Easing:          Linear,
	}
}

// Validate rejects tunings that cannot produce a bounded scroll. It is meant
// to run when the owning view is built, not per event.
func (c Config) Validate() error {
	if c.Axis != Vertical && c.Axis != Horizontal {
		return fmt.Errorf("invalid scroll axis: %d", c.Axis)
	}
	if c.EdgeZone <= 0 {
		return errors.New("edge zone must be positive")
	}
	if c.OverdragFloor < 0 {
		return errors.New("overdrag floor must not be negative")
	}
	if c.Step <= 0 {
		return errors.New("step must be positive")
	}
	if c.OverdragDivisor <= 0 {
		return errors.New("overdrag divisor must be positive")
	}
	if c.Duration <= 0 {
		return errors.New("duration must be positive")
	}
	return nil
}

// Target runs the edge test for pointer p against g. ok is false when the
// pointer is outside both edge zones or the viewport is already at the extent
// it would scroll towards.
func (c Config) Target(g Geometry, p Point) (offset float64, ok bool) {
	coord := c.Axis.Coordinate(p)
	lead := g.Start + c.EdgeZone
	trail := g.End - c.EdgeZone

	if coord < lead && g.Offset > g.MinExtent {
		overdrag := max(lead-coord, c.OverdragFloor)
		return max(g.MinExtent, g.Offset-c.Step*overdrag/c.OverdragDivisor), true
	}
	if coord > trail && g.Offset < g.MaxExtent {
		overdrag := max(coord-trail, c.OverdragFloor)
		return min(g.MaxExtent, g.Offset+c.Step*overdrag/c.OverdragDivisor), true
	}
	return 0, false
}

// IsZero reports whether c is the zero Config.
func (c Config) IsZero() bool {
	return c.Axis == Vertical && c.EdgeZone == 0 && c.OverdragFloor == 0 &&
		c.Step == 0 && c.OverdragDivisor == 0 && c.Duration == 0 && c.Easing == nil
}

func (c Config) easing() Easing {
	if c.Easing == nil {
		return Linear
	}
	return c.Easing
}
