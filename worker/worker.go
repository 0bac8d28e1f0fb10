// Package worker runs arena sessions. A worker pops a running session from
// the store, holds its lock and owns its simulation until the session stops.
package worker

import (
	"context"
	"time"

	"github.com/battlesnakeio/arena/controller"
	log "github.com/sirupsen/logrus"
)

// Worker polls the store for sessions to run.
type Worker struct {
	Store             controller.Store
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
	RunSession        func(context.Context, controller.Store, string) error
}

// Run will run the worker in a loop until ctx is done.
func (w *Worker) Run(ctx context.Context, workerID int) {
	for {
		if err := w.run(ctx, workerID); err != nil && err != controller.ErrNotFound && ctx.Err() == nil {
			log.WithError(err).WithField("Worker", workerID).Error("run failed")
		}

		select {
		case <-time.After(w.PollInterval):
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) run(ctx context.Context, workerID int) error {
	// Pop an item of work.
	id, err := w.Store.PopSessionID(ctx)
	if err != nil {
		return err
	}

	// Attempt to get the lock initially.
	token, err := w.Store.Lock(ctx, id, "")
	if err != nil {
		return err
	}

	fields := log.Fields{"Worker": workerID, "SessionID": id}
	log.WithFields(fields).Info("acquired lock")

	// Get a context with the lock token.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctx = controller.ContextWithLockToken(ctx, token)

	defer func() {
		log.WithFields(fields).Info("unlocking")
		if err := w.Store.Unlock(context.Background(), id, token); err != nil {
			log.WithError(err).WithFields(fields).Error("unlock failed")
		}
	}()

	// Hold the lock, heartbeating every HeartbeatInterval.
	go func() {
		t := time.NewTicker(w.HeartbeatInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if _, err := w.Store.Lock(ctx, id, token); err != nil {
					log.WithError(err).WithFields(fields).Warn("lock expired during heartbeat")
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// The session runs on ctx, which carries the lock token and is cancelled
	// as soon as the lock is lost.
	return w.RunSession(ctx, w.Store, id)
}
