package rules

import (
	"math"

	"github.com/battlesnakeio/arena/config"
)

// Pellet is one piece of food. Vitality only drives how bright the pellet is
// drawn, growth depends on Radius alone.
type Pellet struct {
	Pos      Point   `json:"pos"`
	Radius   float64 `json:"radius"`
	Vitality float64 `json:"vitality"`
}

// FoodField is the unordered pellet pool of a round.
type FoodField struct {
	Items []Pellet

	world World
	cfg   *config.Food
	rng   Rand
}

func newFoodField(w World, cfg *config.Food, rng Rand) *FoodField {
	return &FoodField{world: w, cfg: cfg, rng: rng}
}

// Len is the number of live pellets.
func (f *FoodField) Len() int { return len(f.Items) }

func (f *FoodField) newPellet(p Point) Pellet {
	return Pellet{
		Pos:      p,
		Radius:   uniform(f.rng, f.cfg.MinRadius, f.cfg.MaxRadius),
		Vitality: uniform(f.rng, f.cfg.MinVitality, f.cfg.MaxVitality),
	}
}

// Spawn replaces every pellet with n fresh ones scattered over the world.
func (f *FoodField) Spawn(n int) {
	f.Items = f.Items[:0]
	for i := 0; i < n; i++ {
		f.Items = append(f.Items, f.newPellet(Point{
			X: uniform(f.rng, 0, f.world.Width),
			Y: uniform(f.rng, 0, f.world.Height),
		}))
	}
}

// SpawnAt adds n pellets scattered up to spread away from (x, y) on each
// axis, wrapped into the world.
func (f *FoodField) SpawnAt(x, y float64, n int, spread float64) {
	for i := 0; i < n; i++ {
		p := f.world.Mod(Point{
			X: x + uniform(f.rng, -spread, spread),
			Y: y + uniform(f.rng, -spread, spread),
		})
		f.Items = append(f.Items, f.newPellet(p))
	}
}

// Replenish drops a batch somewhere random when the pool has fallen under
// its threshold. It returns how many pellets were added.
func (f *FoodField) Replenish() int {
	if float64(len(f.Items)) >= float64(f.cfg.Count)*f.cfg.ReplenishRatio {
		return 0
	}
	f.SpawnAt(
		uniform(f.rng, 0, f.world.Width),
		uniform(f.rng, 0, f.world.Height),
		f.cfg.ReplenishBatch,
		f.cfg.ReplenishSpread,
	)
	return f.cfg.ReplenishBatch
}

// DropAlong recycles a dead body into pellets, one drop site every d.Every
// points starting at the tail.
func (f *FoodField) DropAlong(body []Point, d config.Drop) {
	for i := 0; i < len(body); i += d.Every {
		f.SpawnAt(body[i].X, body[i].Y, d.PerPoint, d.Spread)
	}
}

// Consume removes and returns every pellet the head circle of e touches.
func (f *FoodField) Consume(e *Entity) []Pellet {
	var eaten []Pellet
	for i := len(f.Items) - 1; i >= 0; i-- {
		p := f.Items[i]
		if CircleHit(e.Head.X, e.Head.Y, e.Radius, p.Pos.X, p.Pos.Y, p.Radius) {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			eaten = append(eaten, p)
		}
	}
	return eaten
}

// Nearest returns the closest pellet strictly within maxDist of p. Ties go to
// the earlier pellet in the pool.
func (f *FoodField) Nearest(p Point, maxDist float64) (Pellet, bool) {
	best := -1
	bestD2 := maxDist * maxDist
	for i := range f.Items {
		if d2 := dist2(f.Items[i].Pos, p); d2 < bestD2 {
			best, bestD2 = i, d2
		}
	}
	if best < 0 {
		return Pellet{}, false
	}
	return f.Items[best], true
}

// headingTo is the angle from p toward the pellet.
func (pl Pellet) headingTo(p Point) float64 {
	return math.Atan2(pl.Pos.Y-p.Y, pl.Pos.X-p.X)
}
