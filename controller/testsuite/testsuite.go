package testsuite

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/rules"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

func createSession(t *testing.T, s controller.Store) string {
	key := uuid.NewV4().String()
	err := s.CreateSession(context.Background(), &controller.Session{
		ID:     key,
		Seed:   1,
		Status: rules.SessionStatusRunning,
	})
	require.Nil(t, err)
	return key
}

func testStoreLock(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Lock random key.
	tok, err := s.Lock(ctx, key, "")
	require.Nil(t, err)
	require.NotEmpty(t, tok)

	// Lock with valid token, no error same token returned.
	tok2, err := s.Lock(ctx, key, tok)
	require.Nil(t, err)
	require.Equal(t, tok, tok2)

	// Lock without the token is refused.
	_, err = s.Lock(ctx, key, "")
	require.Equal(t, controller.ErrIsLocked, err)

	// Unlock without valid token returns error.
	err = s.Unlock(ctx, key, "")
	require.Error(t, err)

	// Unlock with valid token no error.
	err = s.Unlock(ctx, key, tok)
	require.Nil(t, err)

	// Unlock where lock doesn't exist returns no error.
	err = s.Unlock(ctx, key+"-missing", "")
	require.Nil(t, err)
}

func testStoreLockExpiry(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Negative expiry, will always be expired.
	expiry := controller.LockExpiry
	controller.LockExpiry = -10 * time.Second
	defer func() { controller.LockExpiry = expiry }()

	// Lock random key.
	tok, err := s.Lock(ctx, key, "")
	require.Nil(t, err)
	require.NotEmpty(t, tok)

	// Lock (with token) has expired.
	tok2, err := s.Lock(ctx, key, tok)
	require.Nil(t, err)
	require.Equal(t, tok, tok2)

	// Unlock (no token) has expired.
	err = s.Unlock(ctx, key, "")
	require.Nil(t, err)

	// Lock (no token) has expired.
	_, err = s.Lock(ctx, key, "")
	require.Nil(t, err)

	// Unlock (no token) has expired.
	err = s.Unlock(ctx, key, "")
	require.Nil(t, err)
}

func testStoreSessions(t *testing.T, s controller.Store) {
	ctx := context.Background()
	key := createSession(t, s)

	sess, err := s.GetSession(ctx, key)
	require.Nil(t, err)
	require.Equal(t, key, sess.ID)
	require.Equal(t, int64(1), sess.Seed)

	// Returned sessions are copies.
	sess.Status = rules.SessionStatusError
	sess, err = s.GetSession(ctx, key)
	require.Nil(t, err)
	require.Equal(t, rules.SessionStatusRunning, sess.Status)

	// Creating the same id twice fails.
	err = s.CreateSession(ctx, &controller.Session{ID: key})
	require.Error(t, err)

	// NotFound error thrown.
	_, err = s.GetSession(ctx, key+"-missing")
	require.Equal(t, controller.ErrNotFound, err)

	// Pop session can find it.
	id, err := s.PopSessionID(ctx)
	require.Nil(t, err)
	require.Equal(t, key, id)

	// Lock test key, cannot pop.
	_, err = s.Lock(ctx, key, "")
	require.Nil(t, err)
	_, err = s.PopSessionID(ctx)
	require.Equal(t, controller.ErrNotFound, err)
}

func testStoreSessionStatus(t *testing.T, s controller.Store) {
	ctx := context.Background()
	key := createSession(t, s)

	id, err := s.PopSessionID(ctx)
	require.Nil(t, err)
	require.Equal(t, key, id)

	// Set session to error.
	err = s.SetSessionStatus(ctx, key, rules.SessionStatusError)
	require.Nil(t, err)

	// Cannot pop.
	_, err = s.PopSessionID(ctx)
	require.NotNil(t, err)

	err = s.SetSessionStatus(ctx, key+"-missing", rules.SessionStatusError)
	require.Equal(t, controller.ErrNotFound, err)
}

func testStoreFrames(t *testing.T, s controller.Store) {
	ctx := context.Background()
	key := createSession(t, s)

	// Read frames, too high offset.
	frames, err := s.ListFrames(ctx, key, 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Read frames, 0 offset.
	frames, err = s.ListFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	for turn := int64(1); turn <= 5; turn++ {
		err = s.PushFrame(ctx, key, &rules.Snapshot{Turn: turn})
		require.Nil(t, err)
	}

	frames, err = s.ListFrames(ctx, key, 2, 0)
	require.Nil(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, int64(1), frames[0].Turn)

	// Negative offsets count from the newest frame.
	frames, err = s.ListFrames(ctx, key, 1, -1)
	require.Nil(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, int64(5), frames[0].Turn)

	frames, err = s.ListFrames(ctx, key, 10, -3)
	require.Nil(t, err)
	require.Len(t, frames, 3)
	require.Equal(t, int64(3), frames[0].Turn)

	frames, err = s.ListFrames(ctx, key, 0, -100)
	require.Nil(t, err)
	require.Len(t, frames, 5)

	// Read frames of a session that doesn't exist.
	frames, err = s.ListFrames(ctx, key+"-missing", 1, 0)
	require.Equal(t, controller.ErrNotFound, err)
	require.Equal(t, 0, len(frames))

	err = s.PushFrame(ctx, key+"-missing", &rules.Snapshot{})
	require.Equal(t, controller.ErrNotFound, err)
}

func testStoreLockedWrites(t *testing.T, s controller.Store) {
	ctx := context.Background()
	key := createSession(t, s)

	tok, err := s.Lock(ctx, key, "")
	require.Nil(t, err)

	// Only the lock holder may publish or drain the mailbox.
	err = s.PushFrame(ctx, key, &rules.Snapshot{})
	require.Equal(t, controller.ErrIsLocked, err)
	_, err = s.TakeCommands(ctx, key)
	require.Equal(t, controller.ErrIsLocked, err)

	owned := controller.ContextWithLockToken(ctx, tok)
	require.Nil(t, s.PushFrame(owned, key, &rules.Snapshot{}))
	_, err = s.TakeCommands(owned, key)
	require.Nil(t, err)

	// Anyone may post input.
	require.Nil(t, s.SetInput(ctx, key, rules.Input{Boost: true}))
	require.Nil(t, s.RequestRestart(ctx, key))
}

func testStoreCommands(t *testing.T, s controller.Store) {
	ctx := context.Background()
	key := createSession(t, s)

	cmds, err := s.TakeCommands(ctx, key)
	require.Nil(t, err)
	require.Equal(t, controller.Commands{}, cmds)

	in := rules.Input{Heading: 1.5, Steer: true, Boost: true}
	require.Nil(t, s.SetInput(ctx, key, in))
	require.Nil(t, s.RequestRestart(ctx, key))

	cmds, err = s.TakeCommands(ctx, key)
	require.Nil(t, err)
	require.Equal(t, in, cmds.Input)
	require.True(t, cmds.Restart)

	// Input is held, the restart is consumed.
	cmds, err = s.TakeCommands(ctx, key)
	require.Nil(t, err)
	require.Equal(t, in, cmds.Input)
	require.False(t, cmds.Restart)

	// Latest input wins.
	require.Nil(t, s.SetInput(ctx, key, rules.Input{}))
	cmds, err = s.TakeCommands(ctx, key)
	require.Nil(t, err)
	require.Equal(t, rules.Input{}, cmds.Input)

	require.Equal(t, controller.ErrNotFound, s.SetInput(ctx, key+"-missing", in))
	require.Equal(t, controller.ErrNotFound, s.RequestRestart(ctx, key+"-missing"))
	_, err = s.TakeCommands(ctx, key+"-missing")
	require.Equal(t, controller.ErrNotFound, err)
}

func testStoreConcurrentWriters(t *testing.T, s controller.Store) {
	ctx := context.Background()
	key := createSession(t, s)

	var ok uint32 // How many got the lock.
	var wg sync.WaitGroup
	wg.Add(20)

	for i := 0; i < 20; i++ {
		go func() {
			if _, errl := s.Lock(ctx, key, ""); errl == nil {
				atomic.AddUint32(&ok, 1)
			}
			wg.Done()
		}()
	}

	wg.Wait()

	require.Equal(t, uint32(1), ok)
}

// Suite will execute the store testsuite, each test against a fresh store.
func Suite(t *testing.T, newStore func() controller.Store) {
	run := func(name string, test func(*testing.T, controller.Store)) {
		t.Run(name, func(t *testing.T) { test(t, controller.InstrumentStore(newStore())) })
	}
	run("Lock", testStoreLock)
	run("LockExpiry", testStoreLockExpiry)
	run("Sessions", testStoreSessions)
	run("SessionStatus", testStoreSessionStatus)
	run("Frames", testStoreFrames)
	run("LockedWrites", testStoreLockedWrites)
	run("Commands", testStoreCommands)
	run("ConcurrentWriters", testStoreConcurrentWriters)
}
