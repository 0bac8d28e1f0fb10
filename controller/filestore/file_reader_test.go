package filestore

import (
	"bufio"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockReader struct {
	*bufio.Reader
}

func (m *mockReader) Close() error {
	return nil
}

func newMockReader(text string) *mockReader {
	return &mockReader{
		Reader: bufio.NewReader(strings.NewReader(text)),
	}
}

type failReader struct{}

func (f *failReader) ReadBytes(delimiter byte) ([]byte, error) {
	return nil, errors.New("FAIL")
}

func (f *failReader) Close() error {
	return errors.New("FAIL")
}

func withReader(t *testing.T, open func(directory, id string) (reader, error)) {
	prev := openFileReader
	openFileReader = open
	t.Cleanup(func() { openFileReader = prev })
}

func fileOpener(files map[string]string) func(string, string) (reader, error) {
	return func(directory, id string) (reader, error) {
		text, ok := files[id]
		if !ok {
			return nil, errors.New("file not found")
		}
		return newMockReader(text), nil
	}
}

func headerTestJSON() string {
	j, _ := json.Marshal(&header{Session: basicSession()})
	return string(j) + "\n"
}

func framesTestJSON() string {
	out := ""
	for _, f := range basicFrames() {
		j, _ := json.Marshal(f)
		out += string(j) + "\n"
	}
	return out
}

func TestReadFramesBadReader(t *testing.T) {
	withReader(t, func(directory, id string) (reader, error) {
		return &failReader{}, nil
	})
	_, _, err := ReadFrames("dir", "myid")
	require.NotNil(t, err)
}

func TestReadFramesOpenReaderError(t *testing.T) {
	withReader(t, func(directory, id string) (reader, error) {
		return nil, errors.New("fail")
	})
	_, _, err := ReadFrames("dir", "myid")
	require.NotNil(t, err)
}

func TestReadFramesWithoutHeader(t *testing.T) {
	withReader(t, fileOpener(map[string]string{"myid": framesTestJSON()}))
	_, _, err := ReadFrames("dir", "myid")
	require.NotNil(t, err)
}

func TestReadFrames(t *testing.T) {
	withReader(t, fileOpener(map[string]string{"myid": headerTestJSON() + framesTestJSON()}))
	s, frames, err := ReadFrames("dir", "myid")

	require.NoError(t, err)
	require.Equal(t, "myid", s.ID)
	require.Len(t, frames, 2)
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)
	require.Equal(t, int64(25), frames[1].Score)
}

func testGarbageEnding(t *testing.T, garbage string) {
	withReader(t, fileOpener(map[string]string{"myid": headerTestJSON() + framesTestJSON() + garbage}))
	_, frames, err := ReadFrames("dir", "myid")

	require.NoError(t, err)
	require.Len(t, frames, 2, "3rd frame is invalid and should be ignored")
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)
}

func TestReadFramesPlusGarbage(t *testing.T) {
	testGarbageEnding(t, "...")
	testGarbageEnding(t, "{")
	testGarbageEnding(t, "{ foo }")
}

func TestReadFramesGarbageAfterHeader(t *testing.T) {
	withReader(t, fileOpener(map[string]string{"myid": headerTestJSON() + "\n\n{\n" + framesTestJSON()}))
	_, frames, err := ReadFrames("dir", "myid")

	require.NoError(t, err)
	require.Len(t, frames, 2, "garbage should be ignored")
}

func TestReadFramesEmpty(t *testing.T) {
	withReader(t, fileOpener(map[string]string{"myid": headerTestJSON()}))
	s, frames, err := ReadFrames("dir", "myid")

	require.NoError(t, err)
	require.NotNil(t, s)
	require.Len(t, frames, 0)
}
