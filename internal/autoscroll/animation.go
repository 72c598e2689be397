package autoscroll

import "time"

// Animation interpolates a scroll offset between two values. Hosts that own
// a frame clock use it to realise Viewport.AnimateTo.
type Animation struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

// NewAnimation starts an animation at start. A nil ease means Linear.
func NewAnimation(from, to float64, d time.Duration, ease Easing, start time.Time) Animation {
	if ease == nil {
		ease = Linear
	}
	return Animation{From: from, To: to, Start: start, Duration: d, Ease: ease}
}

// At returns the offset at now and whether the animation has finished.
func (a Animation) At(now time.Time) (float64, bool) {
	if a.Duration <= 0 {
		return a.To, true
	}
	elapsed := now.Sub(a.Start)
	if elapsed >= a.Duration {
		return a.To, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	ease := a.Ease
	if ease == nil {
		ease = Linear
	}
	t := ease(float64(elapsed) / float64(a.Duration))
	return a.From + (a.To-a.From)*t, false
}
