package rules

import (
	"github.com/battlesnakeio/arena/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Simulation is one arena round: the player, the rival population and the
// food field, all advanced together by Step. It is not safe for concurrent
// use, a single goroutine owns it.
type Simulation struct {
	Player *Entity
	Rivals []*Entity
	Food   *FoodField

	Score   int64
	State   State
	Turn    int64
	Message string

	cfg   *config.Config
	world World
	rng   Rand
}

// New validates cfg and starts a fresh round. Every random draw, spawning
// included, comes from rng, so two simulations built from equally seeded
// sources and stepped with the same inputs and dts stay identical.
func New(cfg *config.Config, rng Rand) (*Simulation, error) {
	if cfg == nil {
		return nil, errors.New("rules: nil config")
	}
	if rng == nil {
		return nil, errors.New("rules: nil random source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "rules: invalid config")
	}
	w := World{Width: cfg.World.Width, Height: cfg.World.Height}
	s := &Simulation{
		cfg:   cfg,
		world: w,
		rng:   rng,
		Food:  newFoodField(w, &cfg.Food, rng),
	}
	s.reset()
	log.WithFields(log.Fields{
		"Width":  w.Width,
		"Height": w.Height,
		"Rivals": len(s.Rivals),
		"Food":   s.Food.Len(),
	}).Info("arena created")
	return s, nil
}

// Restart begins a new round from any state: score back to zero, a freshly
// seeded player near the center, a new rival population and a full food
// field. The turn counter keeps running.
func (s *Simulation) Restart() {
	s.reset()
	log.WithFields(log.Fields{
		"Turn":   s.Turn,
		"Rivals": len(s.Rivals),
		"Food":   s.Food.Len(),
	}).Info("arena restarted")
}

func (s *Simulation) reset() {
	s.Score = 0
	s.State = StateAlive
	s.Message = ""
	s.Player = newPlayer(s.cfg, s.world, s.rng)

	s.Rivals = make([]*Entity, s.cfg.Rivals.Count)
	for i := range s.Rivals {
		s.Rivals[i] = newRival(s.cfg, s.world, s.rng)
	}
	s.Food.Spawn(s.cfg.Food.Count)
}

// World is the arena geometry.
func (s *Simulation) World() World { return s.world }

// Config is the configuration the simulation was built from. Callers must
// not modify it.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Alive reports whether the player is alive.
func (s *Simulation) Alive() bool { return s.State == StateAlive }
