package rules

const (
	// DeathCauseSelfCollision is the death reason when a creature runs into its own body
	DeathCauseSelfCollision = "self-collision"
	// DeathCauseRivalCollision is when the player runs into a rival's body
	DeathCauseRivalCollision = "rival-collision"
	// DeathCausePlayerCollision is when a rival runs into the player's body
	DeathCausePlayerCollision = "player-collision"
)
