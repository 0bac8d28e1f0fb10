package config

import (
	"math"

	"github.com/pkg/errors"
)

// Config holds every gameplay constant of an arena round. The zero value is
// not usable, start from Default.
type Config struct {
	World    World    `json:"world"`
	Player   Player   `json:"player"`
	Rivals   Rivals   `json:"rivals"`
	Food     Food     `json:"food"`
	Steering Steering `json:"steering"`
	Camera   Camera   `json:"camera"`

	// MaxStep caps a single tick's elapsed time, in seconds.
	MaxStep float64 `json:"maxStep"`
	// SeedPoints is the number of trail points laid behind a freshly spawned
	// creature.
	SeedPoints int `json:"seedPoints"`
}

// World is the size of the toroidal arena.
type World struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Creature is the movement, growth and collision tuning shared by the player
// and the rivals.
type Creature struct {
	Radius         float64 `json:"radius"`
	BaseSpeed      float64 `json:"baseSpeed"`
	BoostSpeed     float64 `json:"boostSpeed"`
	TurnRate       float64 `json:"turnRate"`
	SegmentSpacing float64 `json:"segmentSpacing"`
	MinLengthPx    float64 `json:"minLengthPx"`
	MaxLengthPx    float64 `json:"maxLengthPx"`

	// Eating a pellet of radius r grows the creature by GainBase + r*GainPerRadius.
	GainBase      float64 `json:"gainBase"`
	GainPerRadius float64 `json:"gainPerRadius"`

	// Self is the margin used when the head is tested against its own body,
	// Cross when it is tested against the other side's body.
	Self  Margin `json:"self"`
	Cross Margin `json:"cross"`

	Drop Drop `json:"drop"`
}

// Margin describes one head-vs-body test. HeadScale multiplies the radius of
// the moving head, BodyScale the radius of the body being hit. The last Skip
// body points are never tested.
type Margin struct {
	Skip      int     `json:"skip"`
	HeadScale float64 `json:"headScale"`
	BodyScale float64 `json:"bodyScale"`
}

// Drop controls how a dead body is recycled into pellets.
type Drop struct {
	Every    int     `json:"every"`
	PerPoint int     `json:"perPoint"`
	Spread   float64 `json:"spread"`
}

// Player is the creature steered by input.
type Player struct {
	Creature
	LengthPx    float64 `json:"lengthPx"`
	SpawnJitter float64 `json:"spawnJitter"`
}

// Rivals is the AI population.
type Rivals struct {
	Creature
	Count int `json:"count"`
	// A fresh rival starts with a length in [MinLengthPx, MinLengthPx+LengthSpread).
	LengthSpread   float64 `json:"lengthSpread"`
	BoostThreshold float64 `json:"boostThreshold"`
	BoostChance    float64 `json:"boostChance"`
}

// Food is the pellet economy.
type Food struct {
	Count           int     `json:"count"`
	MinRadius       float64 `json:"minRadius"`
	MaxRadius       float64 `json:"maxRadius"`
	MinVitality     float64 `json:"minVitality"`
	MaxVitality     float64 `json:"maxVitality"`
	ReplenishRatio  float64 `json:"replenishRatio"`
	ReplenishBatch  int     `json:"replenishBatch"`
	ReplenishSpread float64 `json:"replenishSpread"`
}

// Steering tunes the rival controller.
type Steering struct {
	SenseRadius  float64 `json:"senseRadius"`
	WanderMin    float64 `json:"wanderMin"`
	WanderMax    float64 `json:"wanderMax"`
	WanderJitter float64 `json:"wanderJitter"`
	// Offsets are tried on both sides of the target heading, in order.
	Offsets []float64 `json:"offsets"`
	// Lookaheads are multiples of the creature radius.
	ShortLook   float64 `json:"shortLook"`
	LongLook    float64 `json:"longLook"`
	DangerScale float64 `json:"dangerScale"`
	SelfSkip    int     `json:"selfSkip"`
	PlayerSkip  int     `json:"playerSkip"`
	RivalSkip   int     `json:"rivalSkip"`
	Evasion     float64 `json:"evasion"`
}

// Camera derives the zoom hint from the player length.
type Camera struct {
	ReferenceLength float64 `json:"referenceLength"`
	Scale           float64 `json:"scale"`
	MinZoom         float64 `json:"minZoom"`
	MaxZoom         float64 `json:"maxZoom"`
}

// Default returns the stock arena.
func Default() *Config {
	return &Config{
		World: World{Width: 5200, Height: 5200},
		Player: Player{
			Creature: Creature{
				Radius:         12,
				BaseSpeed:      170,
				BoostSpeed:     260,
				TurnRate:       4.8,
				SegmentSpacing: 10,
				MinLengthPx:    220,
				MaxLengthPx:    5000,
				GainBase:       18,
				GainPerRadius:  7,
				Self:           Margin{Skip: 10, HeadScale: 0.82, BodyScale: 0.82 * 0.92},
				Cross:          Margin{Skip: 26, HeadScale: 0.88, BodyScale: 0.82},
				Drop:           Drop{Every: 14, PerPoint: 1, Spread: 20},
			},
			LengthPx:    320,
			SpawnJitter: 200,
		},
		Rivals: Rivals{
			Creature: Creature{
				Radius:         12,
				BaseSpeed:      150,
				BoostSpeed:     215,
				TurnRate:       3.8,
				SegmentSpacing: 10,
				MinLengthPx:    240,
				MaxLengthPx:    2600,
				GainBase:       14,
				GainPerRadius:  6,
				Self:           Margin{Skip: 12, HeadScale: 0.85, BodyScale: 0.80},
				Cross:          Margin{Skip: 28, HeadScale: 0.90, BodyScale: 0.85},
				Drop:           Drop{Every: 9, PerPoint: 2, Spread: 26},
			},
			Count:          10,
			LengthSpread:   400,
			BoostThreshold: 700,
			BoostChance:    0.015,
		},
		Food: Food{
			Count:           150,
			MinRadius:       3,
			MaxRadius:       7,
			MinVitality:     0.5,
			MaxVitality:     1.0,
			ReplenishRatio:  0.92,
			ReplenishBatch:  10,
			ReplenishSpread: 900,
		},
		Steering: Steering{
			SenseRadius:  1100,
			WanderMin:    0.8,
			WanderMax:    2.2,
			WanderJitter: 1.2,
			Offsets:      []float64{0.55, 1.05},
			ShortLook:    2.6,
			LongLook:     4.2,
			DangerScale:  0.9,
			SelfSkip:     30,
			PlayerSkip:   28,
			RivalSkip:    26,
			Evasion:      1.8,
		},
		Camera: Camera{
			ReferenceLength: 320,
			Scale:           9000,
			MinZoom:         0.58,
			MaxZoom:         1.0,
		},
		MaxStep:    0.033,
		SeedPoints: 40,
	}
}

// Validate reports the first inconsistent setting. A simulation must never be
// built from a config that fails validation.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return errors.Errorf("config: world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if c.MaxStep <= 0 {
		return errors.New("config: maxStep must be positive")
	}
	if c.SeedPoints < 1 {
		return errors.New("config: seedPoints must be at least 1")
	}
	if err := c.Player.Creature.validate(c); err != nil {
		return errors.Wrap(err, "player")
	}
	if c.Player.LengthPx < c.Player.MinLengthPx || c.Player.LengthPx > c.Player.MaxLengthPx {
		return errors.Errorf("player: lengthPx %v outside [%v, %v]", c.Player.LengthPx, c.Player.MinLengthPx, c.Player.MaxLengthPx)
	}
	if c.Player.SpawnJitter < 0 {
		return errors.New("player: spawnJitter must not be negative")
	}
	if err := c.Rivals.Creature.validate(c); err != nil {
		return errors.Wrap(err, "rivals")
	}
	if c.Rivals.Count < 0 {
		return errors.New("rivals: count must not be negative")
	}
	if c.Rivals.LengthSpread < 0 {
		return errors.New("rivals: lengthSpread must not be negative")
	}
	if c.Rivals.BoostChance < 0 || c.Rivals.BoostChance > 1 {
		return errors.Errorf("rivals: boostChance %v outside [0, 1]", c.Rivals.BoostChance)
	}
	if err := c.Food.validate(); err != nil {
		return errors.Wrap(err, "food")
	}
	if err := c.Steering.validate(); err != nil {
		return errors.Wrap(err, "steering")
	}
	if c.Camera.Scale <= 0 || c.Camera.MinZoom <= 0 || c.Camera.MinZoom > c.Camera.MaxZoom {
		return errors.New("camera: need scale > 0 and 0 < minZoom <= maxZoom")
	}
	return nil
}

func (cr *Creature) validate(c *Config) error {
	switch {
	case cr.Radius <= 0:
		return errors.New("radius must be positive")
	case cr.SegmentSpacing <= 0:
		return errors.New("segmentSpacing must be positive")
	case cr.BaseSpeed < 0 || cr.BoostSpeed < 0:
		return errors.New("speeds must not be negative")
	case cr.TurnRate < 0:
		return errors.New("turnRate must not be negative")
	case cr.MinLengthPx <= 0:
		return errors.New("minLengthPx must be positive")
	case cr.MinLengthPx > cr.MaxLengthPx:
		return errors.Errorf("minLengthPx %v is greater than maxLengthPx %v", cr.MinLengthPx, cr.MaxLengthPx)
	case cr.GainBase < 0 || cr.GainPerRadius < 0:
		return errors.New("gains must not be negative")
	case cr.Self.Skip < 0 || cr.Cross.Skip < 0:
		return errors.New("collision skips must not be negative")
	case cr.Self.Skip >= cr.Cross.Skip:
		return errors.Errorf("self skip %d must be smaller than cross skip %d", cr.Self.Skip, cr.Cross.Skip)
	case cr.Drop.Every < 1 || cr.Drop.PerPoint < 0 || cr.Drop.Spread < 0:
		return errors.New("drop needs every >= 1 and non-negative perPoint and spread")
	}
	// A single wrap per tick is only correct if no tick can cross the world.
	step := math.Max(cr.BaseSpeed, cr.BoostSpeed) * c.MaxStep
	if step >= math.Min(c.World.Width, c.World.Height) {
		return errors.Errorf("a %v step can cross the whole world", step)
	}
	return nil
}

func (f *Food) validate() error {
	switch {
	case f.Count < 0:
		return errors.New("count must not be negative")
	case f.MinRadius <= 0 || f.MinRadius > f.MaxRadius:
		return errors.Errorf("radius range [%v, %v] is invalid", f.MinRadius, f.MaxRadius)
	case f.MinVitality > f.MaxVitality:
		return errors.Errorf("vitality range [%v, %v] is invalid", f.MinVitality, f.MaxVitality)
	case f.ReplenishRatio < 0 || f.ReplenishRatio > 1:
		return errors.Errorf("replenishRatio %v outside [0, 1]", f.ReplenishRatio)
	case f.ReplenishBatch < 0 || f.ReplenishSpread < 0:
		return errors.New("replenish batch and spread must not be negative")
	}
	return nil
}

func (s *Steering) validate() error {
	switch {
	case s.SenseRadius < 0:
		return errors.New("senseRadius must not be negative")
	case s.WanderMin <= 0 || s.WanderMin > s.WanderMax:
		return errors.Errorf("wander range [%v, %v] is invalid", s.WanderMin, s.WanderMax)
	case s.ShortLook <= 0 || s.ShortLook > s.LongLook:
		return errors.Errorf("lookaheads %v/%v must satisfy 0 < short <= long", s.ShortLook, s.LongLook)
	case s.DangerScale <= 0:
		return errors.New("dangerScale must be positive")
	case s.SelfSkip < 0 || s.PlayerSkip < 0 || s.RivalSkip < 0:
		return errors.New("sensor skips must not be negative")
	}
	for i := 1; i < len(s.Offsets); i++ {
		if s.Offsets[i] < s.Offsets[i-1] {
			return errors.New("offsets must be ordered closest first")
		}
	}
	return nil
}
