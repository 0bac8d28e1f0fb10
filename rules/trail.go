package rules

import "math"

// PushPoint samples p into the trail. Points are only ever appended whole
// SegmentSpacing steps away from the last one, so a tick that covers several
// spacings (boosting on a slow frame) fills the gap instead of leaving one.
// Distances are measured on the torus so an edge crossing does not lay a
// segment across the world.
func (e *Entity) PushPoint(w World, p Point) {
	n := len(e.Trail)
	if n == 0 {
		e.Trail = append(e.Trail, p)
		return
	}
	last := e.Trail[n-1]
	delta := w.Delta(last, p)
	d := math.Hypot(delta.X, delta.Y)
	if d == 0 || d < e.SegmentSpacing {
		return
	}

	steps := int(math.Floor(d / e.SegmentSpacing))
	nx, ny := delta.X/d, delta.Y/d
	for i := 1; i <= steps; i++ {
		step := e.SegmentSpacing * float64(i)
		e.Trail = append(e.Trail, w.Wrap(Point{X: last.X + nx*step, Y: last.Y + ny*step}))
	}
}

// MaxTrailPoints is how many trail points the current desired length allows.
func (e *Entity) MaxTrailPoints() int {
	return int(math.Ceil(e.LengthPx / e.SegmentSpacing))
}

// TrimToLength drops the oldest points beyond MaxTrailPoints. It is the only
// way a trail ever gets shorter.
func (e *Entity) TrimToLength() {
	if excess := len(e.Trail) - e.MaxTrailPoints(); excess > 0 {
		e.Trail = append(e.Trail[:0], e.Trail[excess:]...)
	}
}

// RebuildBody copies the trail into the body and ends it at the live head.
func (e *Entity) RebuildBody() {
	e.Body = append(e.Body[:0], e.Trail...)
	if n := len(e.Body); n == 0 || !e.Body[n-1].Equal(e.Head) {
		e.Body = append(e.Body, e.Head)
	}
}

// updateShape runs the trail pipeline for a head that just moved.
func (e *Entity) updateShape(w World) {
	e.PushPoint(w, e.Head)
	e.TrimToLength()
	e.RebuildBody()
}
