package rules

import (
	"testing"

	"github.com/battlesnakeio/arena/config"
	"github.com/stretchr/testify/require"
)

func testEntity() *Entity {
	cfg := config.Default()
	e := newEntity(KindPlayer, &cfg.Player.Creature)
	e.LengthPx = 320
	return e
}

func TestPushPointEmptyTrail(t *testing.T) {
	e := testEntity()
	e.PushPoint(testWorld, Point{X: 3, Y: 4})
	require.Equal(t, []Point{{X: 3, Y: 4}}, e.Trail)
}

func TestPushPointSpacing(t *testing.T) {
	e := testEntity()
	e.Trail = []Point{{X: 0, Y: 0}}

	e.PushPoint(testWorld, Point{X: 25, Y: 0})
	require.Equal(t, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}, e.Trail)

	// Less than one spacing from the last point.
	e.PushPoint(testWorld, Point{X: 27, Y: 0})
	require.Len(t, e.Trail, 3)

	e.PushPoint(testWorld, Point{X: 20, Y: 0})
	require.Len(t, e.Trail, 3)
}

func TestPushPointAcrossEdge(t *testing.T) {
	e := testEntity()
	e.Trail = []Point{{X: 5195, Y: 100}}

	e.PushPoint(testWorld, Point{X: 5, Y: 100})
	require.Len(t, e.Trail, 2)
	require.InDelta(t, 5, e.Trail[1].X, 1e-9)
	require.Equal(t, 100.0, e.Trail[1].Y)
}

func TestTrimToLength(t *testing.T) {
	e := testEntity()
	e.LengthPx = 45
	for i := 0; i < 8; i++ {
		e.Trail = append(e.Trail, Point{X: float64(i * 10)})
	}
	e.TrimToLength()
	require.Len(t, e.Trail, 5)
	require.Equal(t, Point{X: 30}, e.Trail[0])
	require.Equal(t, Point{X: 70}, e.Trail[4])

	// Never grows the trail.
	e.LengthPx = 1000
	e.TrimToLength()
	require.Len(t, e.Trail, 5)
}

func TestRebuildBody(t *testing.T) {
	e := testEntity()
	e.Trail = []Point{{X: 0}, {X: 10}, {X: 20}}

	e.Head = Point{X: 20}
	e.RebuildBody()
	require.Equal(t, e.Trail, e.Body)

	e.Head = Point{X: 24}
	e.RebuildBody()
	require.Len(t, e.Body, 4)
	require.Equal(t, e.Head, e.Body[3])

	e.Trail = nil
	e.RebuildBody()
	require.Equal(t, []Point{e.Head}, e.Body)
}

func TestSeedTrail(t *testing.T) {
	e := testEntity()
	e.Head = Point{X: 100, Y: 50}
	e.Heading = 0
	e.seedTrail(testWorld, 40)

	require.Len(t, e.Trail, 40)
	require.Equal(t, e.Head, e.Trail[39])
	require.InDelta(t, 5200+100-390, e.Trail[0].X, 1e-9)
	for i := 1; i < len(e.Trail); i++ {
		require.InDelta(t, 10, torusDist(testWorld, e.Trail[i-1], e.Trail[i]), 1e-9)
	}
	require.Equal(t, e.Trail, e.Body)
}

func TestGrowClamp(t *testing.T) {
	e := testEntity()
	e.LengthPx = 4990
	e.Grow(e.Gain(7))
	require.Equal(t, 5000.0, e.LengthPx)

	e.LengthPx = 300
	e.Grow(e.Gain(3))
	require.Equal(t, 339.0, e.LengthPx)
}
