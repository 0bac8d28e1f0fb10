package commands

import (
	"sync"

	"github.com/battlesnakeio/arena/rules"
)

type frameHolder struct {
	sync.RWMutex
	frames []*rules.Snapshot
	ffc    chan *rules.Snapshot
}

func newFrameHolder() *frameHolder {
	return &frameHolder{ffc: make(chan *rules.Snapshot, 1)}
}

func (fh *frameHolder) append(frame *rules.Snapshot) {
	fh.Lock()
	defer fh.Unlock()

	if len(fh.frames) == 0 {
		fh.ffc <- frame
		close(fh.ffc)
	}

	fh.frames = append(fh.frames, frame)
}

func (fh *frameHolder) get(index int) *rules.Snapshot {
	fh.RLock()
	defer fh.RUnlock()

	if index < 0 || index >= len(fh.frames) {
		return nil
	}

	return fh.frames[index]
}

func (fh *frameHolder) last() *rules.Snapshot {
	fh.RLock()
	defer fh.RUnlock()

	if len(fh.frames) == 0 {
		return nil
	}
	return fh.frames[len(fh.frames)-1]
}

func (fh *frameHolder) initialFrame() <-chan *rules.Snapshot {
	return fh.ffc
}

func (fh *frameHolder) count() int {
	fh.RLock()
	defer fh.RUnlock()

	return len(fh.frames)
}
