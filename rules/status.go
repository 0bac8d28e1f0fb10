package rules

// State is the player's lifecycle state. Rivals never hold a Dead state, they
// are replaced the tick they die.
type State string

const (
	// StateAlive means the player is steering and can die.
	StateAlive State = "alive"
	// StateDead means the player is frozen until a restart.
	StateDead State = "dead"
)

var (
	// SessionStatusStopped represents a stopped session
	SessionStatusStopped = "stopped"
	// SessionStatusRunning represents a running session
	SessionStatusRunning = "running"
	// SessionStatusError represents a session that ended because of an error
	SessionStatusError = "error"
	// SessionStatusComplete represents a session that reached its turn limit
	SessionStatusComplete = "complete"
)

// GameOverMessage is surfaced in snapshots while the player is dead.
const GameOverMessage = "Game Over - restart to play again"
