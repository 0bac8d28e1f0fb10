package rules

import (
	"math"
	"math/rand"
	"testing"

	"github.com/battlesnakeio/arena/config"
	"github.com/stretchr/testify/require"
)

func newTestSimulation(t *testing.T, seed int64, tune func(*config.Config)) *Simulation {
	cfg := config.Default()
	if tune != nil {
		tune(cfg)
	}
	s, err := New(cfg, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return s
}

// emptyArena has no rivals and no food, so nothing happens unless a test
// puts it there.
func emptyArena(cfg *config.Config) {
	cfg.Rivals.Count = 0
	cfg.Food.Count = 0
}

func torusDist(w World, a, b Point) float64 {
	d := w.Delta(a, b)
	return math.Hypot(d.X, d.Y)
}

func requireEntityInvariants(t *testing.T, w World, e *Entity) {
	require.True(t, w.Contains(e.Head), "head %v outside world", e.Head)
	require.GreaterOrEqual(t, e.LengthPx, e.MinLengthPx)
	require.LessOrEqual(t, e.LengthPx, e.MaxLengthPx)
	// A fresh seed trail may exceed the length until its first tick.
	require.LessOrEqual(t, len(e.Trail), max(e.MaxTrailPoints(), 40))

	for i, p := range e.Trail {
		require.True(t, w.Contains(p), "trail point %d %v outside world", i, p)
		if i > 0 {
			require.GreaterOrEqual(t, torusDist(w, e.Trail[i-1], p), e.SegmentSpacing-1e-6)
		}
	}

	require.NotEmpty(t, e.Body)
	require.True(t, e.Body[len(e.Body)-1].Equal(e.Head))
}
