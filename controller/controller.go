// Package controller keeps track of arena sessions: their status, the input
// and restart mailbox read by the worker, and the frames it publishes.
package controller

import (
	"context"
	"time"

	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/rules"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// New will initialize a new Controller.
func New(store Store) *Controller {
	return &Controller{Store: store}
}

// Controller is the front door used by the API and the CLI. Workers talk to
// the Store directly.
type Controller struct {
	Store Store
	// Config is used for sessions created without one. Nil means
	// config.Default.
	Config *config.Config
}

// CreateRequest describes a new session. A zero Seed picks one from the
// clock, a zero MaxTurns runs until stopped. Autopilot sessions drive the
// player themselves.
type CreateRequest struct {
	Seed      int64          `json:"seed"`
	MaxTurns  int64          `json:"maxTurns"`
	Config    *config.Config `json:"config,omitempty"`
	Autopilot bool           `json:"autopilot,omitempty"`
}

// Status is a session together with its newest frame.
type Status struct {
	Session   *Session        `json:"session"`
	LastFrame *rules.Snapshot `json:"lastFrame,omitempty"`
}

// Create validates the request and inserts a running session to be picked up
// by a worker.
func (c *Controller) Create(ctx context.Context, req CreateRequest) (*Session, error) {
	cfg := req.Config
	if cfg == nil {
		cfg = c.Config
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "controller: invalid config")
	}
	if req.MaxTurns < 0 {
		return nil, errors.New("controller: maxTurns must not be negative")
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		ID:        uuid.NewV4().String(),
		Seed:      seed,
		MaxTurns:  req.MaxTurns,
		Status:    rules.SessionStatusRunning,
		Created:   time.Now().UTC(),
		Config:    cfg,
		Autopilot: req.Autopilot,
	}
	if err := c.Store.CreateSession(ctx, s); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Seed":      s.Seed,
		"MaxTurns":  s.MaxTurns,
	}).Info("session created")
	return s, nil
}

// Status fetches the session and its newest frame, if any was published yet.
func (c *Controller) Status(ctx context.Context, id string) (*Status, error) {
	s, err := c.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	frames, err := c.Store.ListFrames(ctx, id, 1, -1)
	if err != nil {
		return nil, err
	}
	st := &Status{Session: s}
	if len(frames) > 0 {
		st.LastFrame = frames[0]
	}
	return st, nil
}

// Frames lists published frames, see Store.ListFrames for the paging rules.
func (c *Controller) Frames(ctx context.Context, id string, limit, offset int) ([]*rules.Snapshot, error) {
	return c.Store.ListFrames(ctx, id, limit, offset)
}

// Input replaces the held player input of a session.
func (c *Controller) Input(ctx context.Context, id string, in rules.Input) error {
	return c.Store.SetInput(ctx, id, in)
}

// Restart asks the worker to start a new round on its next tick.
func (c *Controller) Restart(ctx context.Context, id string) error {
	if err := c.Store.RequestRestart(ctx, id); err != nil {
		return err
	}
	log.WithField("SessionID", id).Info("restart requested")
	return nil
}

// Stop marks a session stopped, the worker lets go of it after its current
// tick.
func (c *Controller) Stop(ctx context.Context, id string) error {
	if err := c.Store.SetSessionStatus(ctx, id, rules.SessionStatusStopped); err != nil {
		return err
	}
	log.WithField("SessionID", id).Info("session stopped")
	return nil
}
