package filestore

import (
	"context"
	"os/user"
	"path"
	"sync"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func defaultDir() string {
	return path.Join(homeDir(), ".arena/sessions")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// Tee wraps store so that every session also gets a frame log on disk, one
// file per session holding a header line and one JSON line per published
// frame. Reads are always served by store.
func Tee(store controller.Store, directory string) controller.Store {
	if directory == "" {
		directory = defaultDir()
	}
	return &fileStore{
		Store:     store,
		directory: directory,
		writers:   map[string]writer{},
	}
}

type fileStore struct {
	controller.Store

	directory string
	writers   map[string]writer
	lock      sync.Mutex
}

// closeSession closes the handle to the session's log. Should be called when
// the session stops running.
func (fs *fileStore) closeSession(id string) {
	if w, ok := fs.writers[id]; ok {
		if err := w.Close(); err != nil {
			log.WithError(err).WithField("SessionID", id).Error("Error while closing file writer")
		}
	}
	delete(fs.writers, id)
}

func (fs *fileStore) CreateSession(ctx context.Context, s *controller.Session) error {
	if err := fs.Store.CreateSession(ctx, s); err != nil {
		return err
	}

	fs.lock.Lock()
	defer fs.lock.Unlock()

	handle, err := openFileWriter(fs.directory, s.ID, true)
	if err != nil {
		return errors.Wrapf(err, "filestore: open log for %s", s.ID)
	}
	fs.writers[s.ID] = handle
	if err := writeHeader(handle, s); err != nil {
		fs.closeSession(s.ID)
		return errors.Wrapf(err, "filestore: write header for %s", s.ID)
	}
	return nil
}

func (fs *fileStore) SetSessionStatus(ctx context.Context, id string, status string) error {
	if err := fs.Store.SetSessionStatus(ctx, id, status); err != nil {
		return err
	}
	if status != rules.SessionStatusRunning {
		fs.lock.Lock()
		fs.closeSession(id)
		fs.lock.Unlock()
	}
	return nil
}

func (fs *fileStore) PushFrame(ctx context.Context, id string, f *rules.Snapshot) error {
	if err := fs.Store.PushFrame(ctx, id, f); err != nil {
		return err
	}

	fs.lock.Lock()
	defer fs.lock.Unlock()

	handle, err := fs.requireHandle(ctx, id)
	if err != nil {
		return err
	}
	if handle == nil {
		return nil
	}
	return errors.Wrapf(writeFrame(handle, f), "filestore: write frame for %s", id)
}

// requireHandle returns the open log of a session, reopening it for append
// if the session is running again. A stopped session has no log handle.
func (fs *fileStore) requireHandle(ctx context.Context, id string) (writer, error) {
	if w, ok := fs.writers[id]; ok {
		return w, nil
	}
	s, err := fs.Store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status != rules.SessionStatusRunning {
		return nil, nil
	}
	handle, err := openFileWriter(fs.directory, id, false)
	if err != nil {
		return nil, errors.Wrapf(err, "filestore: reopen log for %s", id)
	}
	fs.writers[id] = handle
	return handle, nil
}

func getFilePath(directory string, id string) string {
	return path.Join(directory, id) + ".jsonl"
}
