package rules

import (
	"math"

	"github.com/battlesnakeio/arena/config"
)

// Kind tells the player apart from the rivals.
type Kind string

const (
	// KindPlayer is the creature driven by Input.
	KindPlayer Kind = "player"
	// KindRival is an AI creature.
	KindRival Kind = "rival"
)

// Wander is the fallback heading a steered creature follows while no pellet
// is in sensing range.
type Wander struct {
	Heading float64
	// Timer counts down, in seconds, to the next re-roll.
	Timer float64
}

// Entity is a trail-based creature. The player and the rivals share this
// shape, rivals additionally carry Wander state.
type Entity struct {
	Kind    Kind
	Head    Point
	Heading float64

	Radius         float64
	BaseSpeed      float64
	BoostSpeed     float64
	TurnRate       float64
	SegmentSpacing float64

	LengthPx    float64
	MinLengthPx float64
	MaxLengthPx float64

	// Trail is the uniformly spaced head history, oldest first. Body is the
	// trail plus the live head, rebuilt every tick.
	Trail []Point
	Body  []Point

	Boosting bool

	// Wander is nil for the player.
	Wander *Wander
	// HueShift only tints the rival when drawn.
	HueShift float64

	tuning *config.Creature
}

func newEntity(kind Kind, c *config.Creature) *Entity {
	return &Entity{
		Kind:           kind,
		Radius:         c.Radius,
		BaseSpeed:      c.BaseSpeed,
		BoostSpeed:     c.BoostSpeed,
		TurnRate:       c.TurnRate,
		SegmentSpacing: c.SegmentSpacing,
		MinLengthPx:    c.MinLengthPx,
		MaxLengthPx:    c.MaxLengthPx,
		tuning:         c,
	}
}

func newPlayer(cfg *config.Config, w World, rng Rand) *Entity {
	e := newEntity(KindPlayer, &cfg.Player.Creature)
	j := cfg.Player.SpawnJitter
	e.Head = w.Mod(Point{
		X: w.Width/2 + uniform(rng, -j, j),
		Y: w.Height/2 + uniform(rng, -j, j),
	})
	e.Heading = uniform(rng, -math.Pi, math.Pi)
	e.LengthPx = cfg.Player.LengthPx
	e.seedTrail(w, cfg.SeedPoints)
	return e
}

func newRival(cfg *config.Config, w World, rng Rand) *Entity {
	r := &cfg.Rivals
	e := newEntity(KindRival, &r.Creature)
	e.Head = Point{X: uniform(rng, 0, w.Width), Y: uniform(rng, 0, w.Height)}
	e.Heading = uniform(rng, -math.Pi, math.Pi)
	e.LengthPx = clamp(uniform(rng, r.MinLengthPx, r.MinLengthPx+r.LengthSpread), r.MinLengthPx, r.MaxLengthPx)
	e.Wander = &Wander{
		Heading: uniform(rng, -math.Pi, math.Pi),
		Timer:   uniform(rng, cfg.Steering.WanderMin, cfg.Steering.WanderMax),
	}
	e.HueShift = uniform(rng, -80, 80)
	e.seedTrail(w, cfg.SeedPoints)
	return e
}

// seedTrail lays n points behind the head along the current heading, oldest
// first, so the newest trail point is the head itself.
func (e *Entity) seedTrail(w World, n int) {
	e.Trail = e.Trail[:0]
	dx, dy := math.Cos(e.Heading), math.Sin(e.Heading)
	for i := n - 1; i >= 0; i-- {
		back := float64(i) * e.SegmentSpacing
		e.Trail = append(e.Trail, w.Mod(Point{X: e.Head.X - dx*back, Y: e.Head.Y - dy*back}))
	}
	e.RebuildBody()
}

// Speed is the current linear speed.
func (e *Entity) Speed() float64 {
	if e.Boosting {
		return e.BoostSpeed
	}
	return e.BaseSpeed
}

// TurnToward rotates the heading toward target, limited by TurnRate.
func (e *Entity) TurnToward(target, dt float64) {
	e.Heading = turnToward(e.Heading, target, e.TurnRate*dt)
}

// Advance moves the head along the heading and wraps it into the world.
func (e *Entity) Advance(w World, dt float64) {
	d := e.Speed() * dt
	e.Head = w.Wrap(Point{
		X: e.Head.X + math.Cos(e.Heading)*d,
		Y: e.Head.Y + math.Sin(e.Heading)*d,
	})
}

// Gain is the growth a pellet of the given radius is worth to e.
func (e *Entity) Gain(radius float64) float64 {
	return e.tuning.GainBase + radius*e.tuning.GainPerRadius
}

// Grow adds gain to the desired length, clamped to the creature's bounds.
func (e *Entity) Grow(gain float64) {
	e.LengthPx = clamp(e.LengthPx+gain, e.MinLengthPx, e.MaxLengthPx)
}
