package filestore

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/rules"
	"github.com/pkg/errors"
)

var openFileReader = openLocalFileReader

type reader interface {
	ReadBytes(delim byte) ([]byte, error)
	Close() error
}

type fileReader struct {
	*bufio.Reader
	f *os.File
}

func (r *fileReader) Close() error { return r.f.Close() }

func openLocalFileReader(directory, id string) (reader, error) {
	f, err := os.Open(getFilePath(directory, id))
	if err != nil {
		return nil, err
	}
	return &fileReader{Reader: bufio.NewReader(f), f: f}, nil
}

// readLine decodes the next line into out. more is false once the reader is
// exhausted.
func readLine(r reader, out interface{}) (more bool, err error) {
	bytes, err := r.ReadBytes('\n')
	eof := err == io.EOF
	if err != nil && !eof {
		return false, err
	}
	if err = json.Unmarshal(bytes, out); err != nil {
		return !eof, err
	}
	return !eof, nil
}

// ReadFrames loads a frame log written by Tee. Lines that do not decode, such
// as a frame cut short by a crash, are skipped.
func ReadFrames(directory, id string) (*controller.Session, []*rules.Snapshot, error) {
	if directory == "" {
		directory = defaultDir()
	}
	r, err := openFileReader(directory, id)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "filestore: open log for %s", id)
	}
	defer r.Close()

	h := header{}
	more, err := readLine(r, &h)
	if err != nil || h.Session == nil {
		return nil, nil, errors.Errorf("filestore: log for %s has no header", id)
	}

	frames := []*rules.Snapshot{}
	for more {
		f := &rules.Snapshot{}
		more, err = readLine(r, f)
		if err != nil {
			continue
		}
		frames = append(frames, f)
	}
	return h.Session, frames, nil
}
