package rules

import "math"

// Point is a position in world space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Equal checks if 2 points are the same x,y coordinate
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

func dist2(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// World is the toroidal arena. Crossing an edge re-enters through the
// opposite edge, there are no walls.
type World struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Wrap folds p back into [0,Width)x[0,Height). A single fold per axis is
// enough because no tick moves anything further than one world size.
func (w World) Wrap(p Point) Point {
	if p.X < 0 {
		p.X += w.Width
	}
	if p.X >= w.Width {
		p.X -= w.Width
	}
	if p.Y < 0 {
		p.Y += w.Height
	}
	if p.Y >= w.Height {
		p.Y -= w.Height
	}
	return p
}

// Mod folds an arbitrary position into the world.
func (w World) Mod(p Point) Point {
	return w.Wrap(Point{X: math.Mod(p.X, w.Width), Y: math.Mod(p.Y, w.Height)})
}

// Contains reports whether p is a wrapped position.
func (w World) Contains(p Point) bool {
	return p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height
}

// Delta returns the shortest displacement from a to b on the torus.
func (w World) Delta(a, b Point) Point {
	return Point{
		X: shortest(b.X-a.X, w.Width),
		Y: shortest(b.Y-a.Y, w.Height),
	}
}

func shortest(d, size float64) float64 {
	if d > size/2 {
		return d - size
	}
	if d < -size/2 {
		return d + size
	}
	return d
}

// normalizeAngle maps a onto [-Pi, Pi).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// turnToward moves current toward target along the shortest arc, by at most
// maxStep radians.
func turnToward(current, target, maxStep float64) float64 {
	diff := normalizeAngle(target - current)
	diff = clamp(diff, -maxStep, maxStep)
	return normalizeAngle(current + diff)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
