package rules

import (
	"testing"

	"github.com/battlesnakeio/arena/config"
	"github.com/stretchr/testify/require"
)

func TestCircleHit(t *testing.T) {
	require.True(t, CircleHit(0, 0, 1, 2, 0, 1))
	require.True(t, CircleHit(0, 0, 5, 1, 1, 1))
	require.False(t, CircleHit(0, 0, 1, 2.01, 0, 1))
}

func TestHeadHitsBodySkipsNeck(t *testing.T) {
	body := []Point{{X: 0}, {X: 10}, {X: 20}, {X: 30}, {X: 40}}

	// Everything overlaps the head but all of it is neck.
	require.False(t, HeadHitsBody(20, 0, 100, body, 5, 1))
	require.False(t, HeadHitsBody(20, 0, 100, body, 9, 1))
	require.False(t, HeadHitsBody(20, 0, 100, nil, 0, 1))

	require.True(t, HeadHitsBody(0, 0, 1, body, 4, 1))
	require.False(t, HeadHitsBody(40, 0, 1, body, 1, 1))
	require.True(t, HeadHitsBody(40, 0, 1, body, 0, 1))
}

func TestFreshCreatureDoesNotHitItself(t *testing.T) {
	cfg := config.Default()
	for _, c := range []*config.Creature{&cfg.Player.Creature, &cfg.Rivals.Creature} {
		e := newEntity(KindPlayer, c)
		e.LengthPx = 320
		e.Head = Point{X: 2600, Y: 2600}
		e.seedTrail(testWorld, cfg.SeedPoints)
		require.False(t, selfCollision(e))

		// A tick's worth of movement keeps the head on the neck.
		e.Advance(testWorld, cfg.MaxStep)
		e.updateShape(testWorld)
		require.False(t, selfCollision(e))
	}
}

// curledBody lays n points spaced 10 apart with the head placed on top of
// body point at.
func curledBody(e *Entity, n, at int) {
	e.Body = e.Body[:0]
	for i := 0; i < n; i++ {
		e.Body = append(e.Body, Point{X: 100 + float64(i)*10, Y: 500})
	}
	e.Head = e.Body[at]
}

func TestSelfCollisionForgiveness(t *testing.T) {
	cfg := config.Default()
	e := newEntity(KindPlayer, &cfg.Player.Creature)

	// The last 10 points are the neck.
	curledBody(e, 40, 32)
	require.False(t, selfCollision(e))

	// Head 0.82*12, body 0.82*0.92*12: touching a point well outside the neck.
	curledBody(e, 40, 5)
	require.True(t, selfCollision(e))

	// Near miss: 20 units away from the closest counted point.
	curledBody(e, 40, 5)
	e.Head.Y += 20
	require.False(t, selfCollision(e))
}

func TestCrossCollision(t *testing.T) {
	cfg := config.Default()
	player := newEntity(KindPlayer, &cfg.Player.Creature)
	rival := newEntity(KindRival, &cfg.Rivals.Creature)

	curledBody(rival, 60, 59)
	player.Head = rival.Body[10]
	require.True(t, crossCollision(player, rival))

	// The rival's last 26 points do not count against the player.
	player.Head = rival.Body[40]
	require.False(t, crossCollision(player, rival))

	// The player's last 28 points do not count against a rival.
	curledBody(player, 60, 59)
	rival.Head = player.Body[34]
	require.False(t, crossCollision(rival, player))
	rival.Head = player.Body[31]
	require.True(t, crossCollision(rival, player))
}

func TestRivalsIgnoreEachOther(t *testing.T) {
	cfg := config.Default()
	a := newEntity(KindRival, &cfg.Rivals.Creature)
	b := newEntity(KindRival, &cfg.Rivals.Creature)
	curledBody(b, 60, 59)
	a.Head = b.Body[5]
	a.Body = []Point{a.Head}

	_, died := checkForRivalDeath(a, nil)
	require.False(t, died)
}

func TestCheckForPlayerDeath(t *testing.T) {
	cfg := config.Default()
	player := newEntity(KindPlayer, &cfg.Player.Creature)
	rival := newEntity(KindRival, &cfg.Rivals.Creature)
	curledBody(rival, 60, 59)

	curledBody(player, 40, 5)
	cause, died := checkForPlayerDeath(player, []*Entity{rival})
	require.True(t, died)
	require.Equal(t, DeathCauseSelfCollision, cause)

	player.Body = []Point{{X: 3000, Y: 3000}}
	player.Head = rival.Body[0]
	cause, died = checkForPlayerDeath(player, []*Entity{rival})
	require.True(t, died)
	require.Equal(t, DeathCauseRivalCollision, cause)

	player.Head = Point{X: 3000, Y: 3000}
	_, died = checkForPlayerDeath(player, []*Entity{rival})
	require.False(t, died)
}
