package filestore

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/battlesnakeio/arena/rules"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	text   string
	err    error
	closed bool
}

func (w *mockWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	w.text += s
	return len(s), nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func (w *mockWriter) lines() []string {
	return strings.Split(strings.TrimSuffix(w.text, "\n"), "\n")
}

func TestWriteHeader(t *testing.T) {
	w := &mockWriter{}
	err := writeHeader(w, basicSession())
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(w.text, "\n"))

	h := header{}
	require.NoError(t, json.Unmarshal([]byte(w.text), &h))
	require.Equal(t, "myid", h.Session.ID)
	require.Equal(t, int64(100), h.Session.MaxTurns)
}

func TestWriteHeaderError(t *testing.T) {
	w := &mockWriter{err: errors.New("fail")}
	err := writeHeader(w, basicSession())
	require.NotNil(t, err)
}

func TestWriteFrame(t *testing.T) {
	w := &mockWriter{}
	err := writeFrame(w, basicFrames()[0])
	require.NoError(t, err)

	f := &rules.Snapshot{}
	require.NoError(t, json.Unmarshal([]byte(w.text), f))
	require.Equal(t, int64(1), f.Turn)
	require.Equal(t, rules.KindPlayer, f.Player.Kind)
	require.Len(t, f.Player.Body, 2)
	require.Len(t, f.Food, 1)
	require.Equal(t, 4.0, f.Food[0].Radius)
}

func TestWriteFrameError(t *testing.T) {
	w := &mockWriter{err: errors.New("fail")}
	err := writeFrame(w, basicFrames()[0])
	require.NotNil(t, err)
}
