package filestore

import (
	"context"
	"errors"
	"testing"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/controller/testsuite"
	"github.com/battlesnakeio/arena/rules"
	"github.com/stretchr/testify/require"
)

func basicSession() *controller.Session {
	return &controller.Session{
		ID:       "myid",
		Seed:     7,
		MaxTurns: 100,
		Status:   rules.SessionStatusRunning,
	}
}

func basicFrames() []*rules.Snapshot {
	return []*rules.Snapshot{
		{
			Turn:  1,
			State: rules.StateAlive,
			World: rules.World{Width: 100, Height: 100},
			Player: rules.EntityView{
				Kind: rules.KindPlayer,
				Head: rules.Point{X: 10, Y: 10},
				Body: []rules.Point{{X: 0, Y: 10}, {X: 10, Y: 10}},
			},
			Food: []rules.Pellet{{Pos: rules.Point{X: 50, Y: 50}, Radius: 4, Vitality: 0.8}},
		},
		{
			Turn:    2,
			State:   rules.StateDead,
			Score:   25,
			Message: rules.GameOverMessage,
		},
	}
}

// withWriter swaps the file opener for the duration of a test.
func withWriter(t *testing.T, open func(directory, id string, mustCreate bool) (writer, error)) {
	prev := openFileWriter
	openFileWriter = open
	t.Cleanup(func() { openFileWriter = prev })
}

func testFileStore(t *testing.T) (controller.Store, *mockWriter) {
	w := &mockWriter{}
	withWriter(t, func(directory, id string, mustCreate bool) (writer, error) {
		return w, nil
	})
	return Tee(controller.InMemStore(), "unused"), w
}

func TestTeeSuite(t *testing.T) {
	dir := t.TempDir()
	testsuite.Suite(t, func() controller.Store {
		return Tee(controller.InMemStore(), dir)
	})
}

func TestTeeRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := Tee(controller.InMemStore(), dir)

	require.NoError(t, fs.CreateSession(ctx, basicSession()))
	for _, f := range basicFrames() {
		require.NoError(t, fs.PushFrame(ctx, "myid", f))
	}
	require.NoError(t, fs.SetSessionStatus(ctx, "myid", rules.SessionStatusComplete))

	s, frames, err := ReadFrames(dir, "myid")
	require.NoError(t, err)
	require.Equal(t, "myid", s.ID)
	require.Equal(t, int64(7), s.Seed)
	require.Equal(t, basicFrames(), frames)

	// Reads still come from the wrapped store.
	listed, err := fs.ListFrames(ctx, "myid", 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestTeeClosesOnStop(t *testing.T) {
	ctx := context.Background()
	fs, w := testFileStore(t)

	require.NoError(t, fs.CreateSession(ctx, basicSession()))
	require.NoError(t, fs.PushFrame(ctx, "myid", basicFrames()[0]))
	require.NoError(t, fs.SetSessionStatus(ctx, "myid", rules.SessionStatusStopped))
	require.True(t, w.closed)
	lines := w.lines()
	require.Len(t, lines, 2)

	// A late frame from the worker is kept in memory but not logged.
	require.NoError(t, fs.PushFrame(ctx, "myid", basicFrames()[1]))
	require.Len(t, w.lines(), 2)
	frames, err := fs.ListFrames(ctx, "myid", 0, 0)
	require.NoError(t, err)
	require.Len(t, frames, 2)
}

func TestTeeReopensRunningSession(t *testing.T) {
	ctx := context.Background()
	fs, w := testFileStore(t)

	require.NoError(t, fs.CreateSession(ctx, basicSession()))
	require.NoError(t, fs.SetSessionStatus(ctx, "myid", rules.SessionStatusStopped))
	require.NoError(t, fs.SetSessionStatus(ctx, "myid", rules.SessionStatusRunning))
	require.NoError(t, fs.PushFrame(ctx, "myid", basicFrames()[0]))
	require.Len(t, w.lines(), 2)
}

func TestCreateSessionHandlesWriteError(t *testing.T) {
	fs, w := testFileStore(t)
	w.err = errors.New("fail")
	err := fs.CreateSession(context.Background(), basicSession())
	require.NotNil(t, err)
	require.True(t, w.closed)
}

func TestCreateSessionHandlesOpenFileError(t *testing.T) {
	withWriter(t, func(directory, id string, mustCreate bool) (writer, error) {
		return nil, errors.New("fail")
	})
	fs := Tee(controller.InMemStore(), "unused")
	err := fs.CreateSession(context.Background(), basicSession())
	require.NotNil(t, err)
}

func TestPushFrameInvalidSession(t *testing.T) {
	fs, w := testFileStore(t)

	err := fs.PushFrame(context.Background(), "notfound", basicFrames()[0])
	require.Equal(t, controller.ErrNotFound, err)
	require.Empty(t, w.text)
}

func TestSetSessionStatusInvalidSession(t *testing.T) {
	fs, _ := testFileStore(t)

	err := fs.SetSessionStatus(context.Background(), "notfound", rules.SessionStatusComplete)
	require.Equal(t, controller.ErrNotFound, err)
}

func TestCreateSessionExistingLog(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, Tee(controller.InMemStore(), dir).CreateSession(ctx, basicSession()))
	// A second store must not clobber the log of the first.
	err := Tee(controller.InMemStore(), dir).CreateSession(ctx, basicSession())
	require.Error(t, err)
}
