package worker

import (
	"math"

	"github.com/battlesnakeio/arena/rules"
)

// Autopilot steers the player with the same controller the rivals use.
type Autopilot struct {
	wander rules.Wander
}

// Input is the autopilot's choice for the next tick. A dead player gets the
// zero input.
func (a *Autopilot) Input(sim *rules.Simulation, dt float64) rules.Input {
	if !sim.Alive() {
		return rules.Input{}
	}
	dt = math.Min(math.Max(dt, 0), sim.Config().MaxStep)
	return rules.Input{
		Heading: sim.ChooseHeading(sim.Player, &a.wander, dt),
		Steer:   true,
	}
}
