package controller

import (
	"context"
	"sync"
	"time"

	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/rules"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

var (
	// LockExpiry is the time after which a lock will expire.
	LockExpiry = time.Duration(config.LockExpiryMS) * time.Millisecond
	// ErrNotFound is thrown when a session is not found.
	ErrNotFound = errors.New("controller: session not found")
	// ErrIsLocked is returned when a session is locked.
	ErrIsLocked = errors.New("controller: session is locked")
)

// Session is one arena run. The simulation itself lives in the worker that
// holds the session's lock, the store only sees what it publishes.
type Session struct {
	ID       string         `json:"id"`
	Seed     int64          `json:"seed"`
	MaxTurns int64          `json:"maxTurns,omitempty"`
	Status   string         `json:"status"`
	Created  time.Time      `json:"created"`
	Config   *config.Config `json:"config,omitempty"`
	// Autopilot steers the player with the rival controller and restarts
	// the round on death.
	Autopilot bool `json:"autopilot,omitempty"`
}

func (s *Session) clone() *Session {
	c := *s
	return &c
}

// Commands is what the runner picks up from the mailbox before a tick.
type Commands struct {
	Input   rules.Input `json:"input"`
	Restart bool        `json:"restart"`
}

// Store is the interface to the backend store.
type Store interface {
	Lock(ctx context.Context, key, token string) (string, error)
	Unlock(ctx context.Context, key, token string) error
	PopSessionID(context.Context) (string, error)
	CreateSession(context.Context, *Session) error
	GetSession(context.Context, string) (*Session, error)
	SetSessionStatus(ctx context.Context, id string, status string) error
	PushFrame(ctx context.Context, id string, frame *rules.Snapshot) error
	ListFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Snapshot, error)
	SetInput(ctx context.Context, id string, in rules.Input) error
	RequestRestart(ctx context.Context, id string) error
	TakeCommands(ctx context.Context, id string) (Commands, error)
}

// InMemStore returns an in memory implementation of the Store interface. At
// most config.FrameHistory frames are kept per session, oldest dropped first.
func InMemStore() Store {
	return &inmem{
		sessions: map[string]*sessionState{},
		locks:    map[string]*lock{},
		history:  config.FrameHistory,
	}
}

type lock struct {
	token   string
	expires time.Time
}

type sessionState struct {
	session  *Session
	frames   []*rules.Snapshot
	commands Commands
}

type inmem struct {
	sessions map[string]*sessionState
	locks    map[string]*lock
	history  int
	lock     sync.Mutex
}

func (in *inmem) Lock(ctx context.Context, key, token string) (string, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	now := time.Now()
	l, ok := in.locks[key]
	if ok {
		if l.expires.Before(now) {
			delete(in.locks, key)
		} else {
			if l.token == token {
				l.expires = now.Add(LockExpiry)
				return l.token, nil
			}
			return "", ErrIsLocked
		}
	}
	if token == "" {
		token = uuid.NewV4().String()
	}
	l = &lock{
		token:   token,
		expires: now.Add(LockExpiry),
	}
	in.locks[key] = l
	return l.token, nil
}

func (in *inmem) isLocked(key string) bool {
	l, ok := in.locks[key]
	return ok && l.expires.After(time.Now())
}

// checkToken rejects writes from anyone but the lock holder while the
// session is locked.
func (in *inmem) checkToken(ctx context.Context, key string) error {
	l, ok := in.locks[key]
	if !ok || l.expires.Before(time.Now()) {
		return nil
	}
	if l.token != ContextGetLockToken(ctx) {
		return ErrIsLocked
	}
	return nil
}

func (in *inmem) Unlock(ctx context.Context, key, token string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	l, ok := in.locks[key]
	if !ok {
		return nil
	}
	if l.token == token || l.expires.Before(time.Now()) {
		delete(in.locks, key)
		return nil
	}
	return ErrIsLocked
}

func (in *inmem) PopSessionID(ctx context.Context) (string, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	for id, s := range in.sessions {
		if !in.isLocked(id) && s.session.Status == rules.SessionStatusRunning {
			return id, nil
		}
	}
	return "", ErrNotFound
}

func (in *inmem) CreateSession(ctx context.Context, s *Session) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if s.ID == "" {
		return errors.New("controller: session id is required")
	}
	if _, ok := in.sessions[s.ID]; ok {
		return errors.Errorf("controller: session %s already exists", s.ID)
	}
	in.sessions[s.ID] = &sessionState{session: s.clone()}
	return nil
}

func (in *inmem) require(id string) (*sessionState, error) {
	s, ok := in.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (in *inmem) GetSession(ctx context.Context, id string) (*Session, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	s, err := in.require(id)
	if err != nil {
		return nil, err
	}
	return s.session.clone(), nil
}

func (in *inmem) SetSessionStatus(ctx context.Context, id string, status string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	s, err := in.require(id)
	if err != nil {
		return err
	}
	s.session.Status = status
	return nil
}

func (in *inmem) PushFrame(ctx context.Context, id string, frame *rules.Snapshot) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	s, err := in.require(id)
	if err != nil {
		return err
	}
	if err := in.checkToken(ctx, id); err != nil {
		return err
	}
	s.frames = append(s.frames, frame)
	if in.history > 0 && len(s.frames) > in.history {
		excess := len(s.frames) - in.history
		s.frames = append(s.frames[:0:0], s.frames[excess:]...)
	}
	return nil
}

func (in *inmem) ListFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Snapshot, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	s, err := in.require(id)
	if err != nil {
		return nil, err
	}
	return window(s.frames, limit, offset), nil
}

// window slices frames for ListFrames. A negative offset counts back from
// the newest frame, a non-positive limit means no limit.
func window(frames []*rules.Snapshot, limit, offset int) []*rules.Snapshot {
	if offset < 0 {
		offset = len(frames) + offset
		if offset < 0 {
			offset = 0
		}
	}
	if len(frames) == 0 || offset >= len(frames) {
		return nil
	}
	end := len(frames)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]*rules.Snapshot(nil), frames[offset:end]...)
}

func (in *inmem) SetInput(ctx context.Context, id string, input rules.Input) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	s, err := in.require(id)
	if err != nil {
		return err
	}
	s.commands.Input = input
	return nil
}

func (in *inmem) RequestRestart(ctx context.Context, id string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	s, err := in.require(id)
	if err != nil {
		return err
	}
	s.commands.Restart = true
	return nil
}

// TakeCommands hands out the held input, which stays in place until replaced,
// and consumes a pending restart.
func (in *inmem) TakeCommands(ctx context.Context, id string) (Commands, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	s, err := in.require(id)
	if err != nil {
		return Commands{}, err
	}
	if err := in.checkToken(ctx, id); err != nil {
		return Commands{}, err
	}
	cmds := s.commands
	s.commands.Restart = false
	return cmds, nil
}
