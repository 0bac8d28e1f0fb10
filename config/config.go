package config

import (
	"os"
	"strconv"

	"golang.org/x/time/rate"
)

// Engine tuning variables. These aren't gameplay settings, they control how
// the worker paces and publishes a running session.
var (
	TickRate     = rate.Limit(getEnvInt("ARENA_TICK_RATE", 60))
	TickBurst    = getEnvInt("ARENA_TICK_BURST", 1)
	FrameEvery   = getEnvInt("ARENA_FRAME_EVERY", 2)
	FrameHistory = getEnvInt("ARENA_FRAME_HISTORY", 600)
	LockExpiryMS = getEnvInt("ARENA_LOCK_EXPIRY_MS", 1000)
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}
