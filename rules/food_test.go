package rules

import (
	"math/rand"
	"testing"

	"github.com/battlesnakeio/arena/config"
	"github.com/stretchr/testify/require"
)

func testFoodField(seed int64) (*FoodField, *config.Config) {
	cfg := config.Default()
	return newFoodField(testWorld, &cfg.Food, rand.New(rand.NewSource(seed))), cfg
}

func TestSpawn(t *testing.T) {
	f, _ := testFoodField(1)
	f.Spawn(150)
	require.Equal(t, 150, f.Len())
	for _, p := range f.Items {
		require.True(t, testWorld.Contains(p.Pos))
		require.GreaterOrEqual(t, p.Radius, 3.0)
		require.Less(t, p.Radius, 7.0)
		require.GreaterOrEqual(t, p.Vitality, 0.5)
		require.LessOrEqual(t, p.Vitality, 1.0)
	}

	// A second spawn replaces the batch.
	f.Spawn(20)
	require.Equal(t, 20, f.Len())
}

func TestSpawnAtWraps(t *testing.T) {
	f, _ := testFoodField(2)
	f.SpawnAt(5, 5195, 200, 50)
	require.Equal(t, 200, f.Len())
	for _, p := range f.Items {
		require.True(t, testWorld.Contains(p.Pos), "pellet %v outside world", p.Pos)
		require.LessOrEqual(t, torusDist(testWorld, p.Pos, Point{X: 5, Y: 5195}), 50*1.5)
	}
}

func TestReplenish(t *testing.T) {
	f, _ := testFoodField(3)
	f.Spawn(140)
	require.Equal(t, 0, f.Replenish())
	require.Equal(t, 140, f.Len())

	f.Spawn(130)
	require.Equal(t, 10, f.Replenish())
	require.Equal(t, 140, f.Len())
	require.Equal(t, 0, f.Replenish())
}

func TestDropAlong(t *testing.T) {
	f, cfg := testFoodField(4)
	body := make([]Point, 28)
	for i := range body {
		body[i] = Point{X: float64(i) * 10, Y: 300}
	}

	// Rival: every 9th point starting at the tail, 2 pellets each.
	f.DropAlong(body, cfg.Rivals.Drop)
	require.Equal(t, 8, f.Len())

	// Player: every 14th point, 1 pellet each.
	f.Spawn(0)
	f.DropAlong(body, cfg.Player.Drop)
	require.Equal(t, 2, f.Len())

	f.Spawn(0)
	f.DropAlong(nil, cfg.Player.Drop)
	require.Equal(t, 0, f.Len())
}

func TestConsume(t *testing.T) {
	f, cfg := testFoodField(5)
	f.Items = []Pellet{
		{Pos: Point{X: 100, Y: 100}, Radius: 5},
		{Pos: Point{X: 500, Y: 500}, Radius: 5},
		{Pos: Point{X: 110, Y: 100}, Radius: 3},
		{Pos: Point{X: 900, Y: 100}, Radius: 4},
	}
	e := newEntity(KindRival, &cfg.Rivals.Creature)
	e.Head = Point{X: 104, Y: 100}

	eaten := f.Consume(e)
	require.Len(t, eaten, 2)
	require.Equal(t, []Pellet{
		{Pos: Point{X: 500, Y: 500}, Radius: 5},
		{Pos: Point{X: 900, Y: 100}, Radius: 4},
	}, f.Items)

	require.Empty(t, f.Consume(e))
}

func TestGrowthFromPellet(t *testing.T) {
	cfg := config.Default()
	rival := newEntity(KindRival, &cfg.Rivals.Creature)
	rival.LengthPx = 300
	rival.Grow(rival.Gain(7))
	require.Equal(t, 356.0, rival.LengthPx)
}

func TestNearest(t *testing.T) {
	f, _ := testFoodField(6)
	_, ok := f.Nearest(Point{}, 1000)
	require.False(t, ok)

	f.Items = []Pellet{
		{Pos: Point{X: 300, Y: 0}},
		{Pos: Point{X: 0, Y: 200}},
		{Pos: Point{X: 200, Y: 0}},
	}
	p, ok := f.Nearest(Point{}, 1000)
	require.True(t, ok)
	require.Equal(t, Point{X: 0, Y: 200}, p.Pos)

	_, ok = f.Nearest(Point{}, 200)
	require.False(t, ok)
}
