package filestore

import (
	"encoding/json"
	"os"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/rules"
)

var openFileWriter = appendOnlyFileWriter

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

// header is the first line of every frame log.
type header struct {
	Session *controller.Session `json:"session"`
}

func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.WriteString(string(j) + "\n")
	return err
}

func writeFrame(w writer, f *rules.Snapshot) error {
	return writeLine(w, f)
}

func writeHeader(w writer, s *controller.Session) error {
	return writeLine(w, &header{Session: s})
}

func appendOnlyFileWriter(directory, id string, mustCreate bool) (writer, error) {
	if err := os.MkdirAll(directory, 0775); err != nil {
		return nil, err
	}

	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE
	if mustCreate {
		flags |= os.O_EXCL
	}
	return os.OpenFile(getFilePath(directory, id), flags, 0644)
}
