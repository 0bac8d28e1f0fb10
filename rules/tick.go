package rules

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Input is the player's intent for one tick. The zero value holds the
// current heading at base speed.
type Input struct {
	// Heading is only read when Steer is set.
	Heading float64 `json:"heading"`
	Steer   bool    `json:"steer"`
	Boost   bool    `json:"boost"`
}

// Step advances the arena by dt seconds and returns the deaths that happened
// during the tick. dt is clamped to [0, MaxStep].
//
// The player moves first, then food is topped up, then each rival in slot
// order. A rival that dies is replaced in its slot straight away and the
// replacement is not checked again this tick. Once the player is dead the
// whole arena is frozen until Restart; only the turn counter advances. The
// rest of the tick the player dies in still runs against its body.
func (s *Simulation) Step(dt float64, in Input) []DeathUpdate {
	dt = clamp(dt, 0, s.cfg.MaxStep)
	s.Turn++
	if s.State == StateDead {
		return nil
	}

	var deaths []DeathUpdate
	if d, died := s.updatePlayer(dt, in); died {
		deaths = append(deaths, d)
	}

	if n := s.Food.Replenish(); n > 0 && log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"Turn":  s.Turn,
			"Added": n,
			"Food":  s.Food.Len(),
		}).Debug("food replenished")
	}

	for i := range s.Rivals {
		if d, died := s.updateRival(i, dt); died {
			deaths = append(deaths, d)
		}
	}
	return deaths
}

func (s *Simulation) updatePlayer(dt float64, in Input) (DeathUpdate, bool) {
	p := s.Player
	if in.Steer && !math.IsNaN(in.Heading) && !math.IsInf(in.Heading, 0) {
		p.TurnToward(in.Heading, dt)
	}
	p.Boosting = in.Boost
	p.Advance(s.world, dt)
	p.updateShape(s.world)

	for _, pl := range s.Food.Consume(p) {
		gain := p.Gain(pl.Radius)
		p.Grow(gain)
		s.Score += int64(math.Round(gain))
	}

	cause, died := checkForPlayerDeath(p, s.Rivals)
	if !died {
		return DeathUpdate{}, false
	}

	s.State = StateDead
	s.Message = GameOverMessage
	p.Boosting = false
	s.Food.DropAlong(p.Body, p.tuning.Drop)
	log.WithFields(log.Fields{
		"Turn":   s.Turn,
		"Cause":  cause,
		"Score":  s.Score,
		"Length": p.LengthPx,
	}).Info("player died")
	return DeathUpdate{Kind: KindPlayer, Cause: cause, Turn: s.Turn, LengthPx: p.LengthPx}, true
}

func (s *Simulation) updateRival(i int, dt float64) (DeathUpdate, bool) {
	r := s.Rivals[i]
	target := s.ChooseHeading(r, r.Wander, dt)
	r.TurnToward(target, dt)

	rc := &s.cfg.Rivals
	r.Boosting = r.LengthPx > rc.BoostThreshold && s.rng.Float64() < rc.BoostChance
	r.Advance(s.world, dt)
	r.updateShape(s.world)

	for _, pl := range s.Food.Consume(r) {
		r.Grow(r.Gain(pl.Radius))
	}

	cause, died := checkForRivalDeath(r, s.Player)
	if !died {
		return DeathUpdate{}, false
	}

	s.Food.DropAlong(r.Body, r.tuning.Drop)
	s.Rivals[i] = newRival(s.cfg, s.world, s.rng)
	log.WithFields(log.Fields{
		"Turn":   s.Turn,
		"Rival":  i,
		"Cause":  cause,
		"Length": r.LengthPx,
	}).Info("rival died")
	return DeathUpdate{Kind: KindRival, Index: i, Cause: cause, Turn: s.Turn, LengthPx: r.LengthPx}, true
}
