package worker

import (
	"context"
	"math/rand"
	"time"

	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	newLimiter = func() *rate.Limiter { return rate.NewLimiter(config.TickRate, config.TickBurst) }
	now        = time.Now
)

// Summary tallies what happened during a session.
type Summary struct {
	Turns     int64          `json:"turns"`
	Score     int64          `json:"score"`
	BestScore int64          `json:"bestScore"`
	Restarts  int            `json:"restarts"`
	Deaths    map[string]int `json:"deaths"`
}

// run is a session being driven by this process.
type run struct {
	store      controller.Store
	id         string
	sess       *controller.Session
	sim        *rules.Simulation
	pilot      *Autopilot
	frameEvery int64
	summary    Summary
	fields     log.Fields
}

// startRun loads the session, builds its simulation and publishes the first
// frame. A session that can't be built is flagged with the error status so
// it is never picked up again.
func startRun(ctx context.Context, store controller.Store, id string) (*run, error) {
	sess, err := store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	r := &run{
		store:      store,
		id:         id,
		sess:       sess,
		frameEvery: int64(config.FrameEvery),
		summary:    Summary{Deaths: map[string]int{}},
		fields:     log.Fields{"SessionID": id},
	}
	if r.frameEvery < 1 {
		r.frameEvery = 1
	}

	cfg := sess.Config
	if cfg == nil {
		cfg = config.Default()
	}
	r.sim, err = rules.New(cfg, rand.New(rand.NewSource(sess.Seed)))
	if err != nil {
		log.WithError(err).WithFields(r.fields).Error("ending session due to fatal error")
		if statusErr := store.SetSessionStatus(ctx, id, rules.SessionStatusError); statusErr != nil {
			log.WithError(statusErr).WithFields(r.fields).Error("failed to flag session")
		}
		return nil, err
	}
	if sess.Autopilot {
		r.pilot = &Autopilot{}
	}

	if err := store.PushFrame(ctx, id, r.sim.Snapshot()); err != nil {
		return nil, err
	}
	return r, nil
}

// tick applies the commands, steps the simulation once and publishes a frame
// when one is due. It reports whether the turn limit was reached.
func (r *run) tick(ctx context.Context, dt float64, cmds controller.Commands) (bool, error) {
	sim := r.sim
	if r.pilot != nil && !sim.Alive() {
		cmds.Restart = true
	}
	if cmds.Restart {
		sim.Restart()
		restarts.Inc()
		r.summary.Restarts++
	}
	in := cmds.Input
	if r.pilot != nil {
		in = r.pilot.Input(sim, dt)
	}

	started := time.Now()
	updates := sim.Step(dt, in)
	tickDuration.Observe(time.Since(started).Seconds())
	ticks.Inc()
	for _, d := range updates {
		deaths.WithLabelValues(string(d.Kind), d.Cause).Inc()
		r.summary.Deaths[string(d.Kind)+"/"+d.Cause]++
	}
	pellets.WithLabelValues(r.id).Set(float64(sim.Food.Len()))
	playerLength.WithLabelValues(r.id).Set(sim.Player.LengthPx)

	r.summary.Turns = sim.Turn
	r.summary.Score = sim.Score
	if sim.Score > r.summary.BestScore {
		r.summary.BestScore = sim.Score
	}

	done := r.sess.MaxTurns > 0 && sim.Turn >= r.sess.MaxTurns
	if done || sim.Turn%r.frameEvery == 0 || len(updates) > 0 {
		if err := r.store.PushFrame(ctx, r.id, sim.Snapshot()); err != nil {
			return false, err
		}
	}
	return done, nil
}

func (r *run) complete(ctx context.Context) error {
	log.WithFields(r.fields).WithFields(log.Fields{
		"Turn":  r.sim.Turn,
		"Score": r.sim.Score,
	}).Info("session complete")
	return errors.Wrap(
		r.store.SetSessionStatus(ctx, r.id, rules.SessionStatusComplete),
		"worker: completing session",
	)
}

// Runner will run an individual session until it stops, errors or reaches
// its turn limit. Ticks are paced by the tick rate limiter and dt is taken
// from the wall clock. The store writes it makes must carry the session's
// lock token on ctx.
func Runner(ctx context.Context, store controller.Store, id string) error {
	r, err := startRun(ctx, store, id)
	if err != nil {
		return err
	}
	defer forgetSession(id)

	limiter := newLimiter()
	last := now()
	for {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		current, err := store.GetSession(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != rules.SessionStatusRunning {
			log.WithFields(r.fields).WithField("Status", current.Status).Info("session no longer running")
			return nil
		}

		cmds, err := store.TakeCommands(ctx, id)
		if err != nil {
			// This is likely a lock error, not to worry here, we can exit.
			return err
		}

		t := now()
		dt := t.Sub(last).Seconds()
		last = t

		done, err := r.tick(ctx, dt, cmds)
		if err != nil {
			return err
		}
		if done {
			return r.complete(ctx)
		}
	}
}

// Simulate runs a session as fast as possible with a fixed dt, ignoring the
// mailbox. It needs a turn limit and returns what happened.
func Simulate(ctx context.Context, store controller.Store, id string, dt float64) (*Summary, error) {
	r, err := startRun(ctx, store, id)
	if err != nil {
		return nil, err
	}
	defer forgetSession(id)

	if r.sess.MaxTurns <= 0 {
		return nil, errors.New("worker: simulate needs a turn limit")
	}
	for {
		if err := ctx.Err(); err != nil {
			return &r.summary, err
		}
		done, err := r.tick(ctx, dt, controller.Commands{})
		if err != nil {
			return &r.summary, err
		}
		if done {
			return &r.summary, r.complete(ctx)
		}
	}
}
