package rules

// DeathUpdate records a creature that died during a tick.
type DeathUpdate struct {
	Kind Kind `json:"kind"`
	// Index is the rival's slot in the population, always 0 for the player.
	Index    int     `json:"index"`
	Cause    string  `json:"cause"`
	Turn     int64   `json:"turn"`
	LengthPx float64 `json:"lengthPx"`
}

// checkForPlayerDeath looks at the player's freshly rebuilt body and the
// rivals' bodies. The player dies by running into itself past the neck, or
// into any part of a rival's body past the rival's neck.
func checkForPlayerDeath(player *Entity, rivals []*Entity) (string, bool) {
	if selfCollision(player) {
		return DeathCauseSelfCollision, true
	}
	for _, r := range rivals {
		if crossCollision(player, r) {
			return DeathCauseRivalCollision, true
		}
	}
	return "", false
}

// checkForRivalDeath checks a rival against itself and the player's body.
// Rivals never die by touching each other.
func checkForRivalDeath(rival, player *Entity) (string, bool) {
	if selfCollision(rival) {
		return DeathCauseSelfCollision, true
	}
	if crossCollision(rival, player) {
		return DeathCausePlayerCollision, true
	}
	return "", false
}
