package rules

import "math"

// ChooseHeading picks the heading e should turn toward this tick: the nearest
// pellet in sensing range or else the wander heading, nudged to the closest
// candidate whose lookahead points are clear of every body. When every
// candidate is blocked it returns a random evasive heading, which can still
// be fatal.
//
// Rivals pass their own Wander state. The player autopilot keeps one outside
// the entity.
func (s *Simulation) ChooseHeading(e *Entity, w *Wander, dt float64) float64 {
	st := &s.cfg.Steering

	var target float64
	if p, ok := s.Food.Nearest(e.Head, st.SenseRadius); ok {
		target = p.headingTo(e.Head)
	} else {
		w.Timer -= dt
		if w.Timer <= 0 {
			w.Timer = uniform(s.rng, st.WanderMin, st.WanderMax)
			w.Heading = normalizeAngle(e.Heading + uniform(s.rng, -st.WanderJitter, st.WanderJitter))
		}
		target = w.Heading
	}

	short := e.Radius * st.ShortLook
	long := e.Radius * st.LongLook
	for _, a := range candidates(target, st.Offsets) {
		if !s.dangerAhead(e, a, short) && !s.dangerAhead(e, a, long) {
			return a
		}
	}
	return normalizeAngle(e.Heading + uniform(s.rng, -st.Evasion, st.Evasion))
}

// candidates lists target first, then each offset to the left and right.
func candidates(target float64, offsets []float64) []float64 {
	out := make([]float64, 0, 1+2*len(offsets))
	out = append(out, normalizeAngle(target))
	for _, o := range offsets {
		out = append(out, normalizeAngle(target+o), normalizeAngle(target-o))
	}
	return out
}

// dangerAhead checks the point look units ahead of e along angle.
func (s *Simulation) dangerAhead(e *Entity, angle, look float64) bool {
	st := &s.cfg.Steering
	ahead := s.world.Wrap(Point{
		X: e.Head.X + math.Cos(angle)*look,
		Y: e.Head.Y + math.Sin(angle)*look,
	})

	near := func(owner *Entity, skip int) bool {
		return pointInsideBody(ahead, owner.Body, skip, owner.Radius*st.DangerScale)
	}

	if near(e, st.SelfSkip) {
		return true
	}
	if e != s.Player && near(s.Player, st.PlayerSkip) {
		return true
	}
	for _, r := range s.Rivals {
		if r != e && near(r, st.RivalSkip) {
			return true
		}
	}
	return false
}
