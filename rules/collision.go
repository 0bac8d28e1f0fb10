package rules

import "github.com/battlesnakeio/arena/config"

// CircleHit reports whether two circles touch or overlap.
func CircleHit(ax, ay, ar, bx, by, br float64) bool {
	dx, dy := ax-bx, ay-by
	rr := ar + br
	return dx*dx+dy*dy <= rr*rr
}

// HeadHitsBody tests a head circle against every body point except the last
// skipFromEnd ones. The skipped neck is always within reach of the head right
// after a trail point is laid, so without it every creature would die on its
// first tick. A body no longer than the neck is never hit.
func HeadHitsBody(headX, headY, headR float64, body []Point, skipFromEnd int, bodyR float64) bool {
	limit := len(body) - skipFromEnd
	if limit <= 0 {
		return false
	}
	rr := (headR + bodyR) * (headR + bodyR)
	for i := 0; i < limit; i++ {
		dx := headX - body[i].X
		dy := headY - body[i].Y
		if dx*dx+dy*dy <= rr {
			return true
		}
	}
	return false
}

// pointInsideBody reports whether p lies strictly inside radius r of any body
// point except the last skipFromEnd. A point exactly on the edge is clear,
// unlike a head touching a body in HeadHitsBody.
func pointInsideBody(p Point, body []Point, skipFromEnd int, r float64) bool {
	limit := len(body) - skipFromEnd
	rr := r * r
	for i := 0; i < limit; i++ {
		if dist2(p, body[i]) < rr {
			return true
		}
	}
	return false
}

func hitsWithMargin(e, other *Entity, m config.Margin) bool {
	return HeadHitsBody(
		e.Head.X, e.Head.Y, e.Radius*m.HeadScale,
		other.Body, m.Skip, other.Radius*m.BodyScale,
	)
}

// selfCollision reports whether e ran into its own body.
func selfCollision(e *Entity) bool {
	return hitsWithMargin(e, e, e.tuning.Self)
}

// crossCollision reports whether e's head ran into other's body.
func crossCollision(e, other *Entity) bool {
	return hitsWithMargin(e, other, e.tuning.Cross)
}
