package commands

import (
	"fmt"
	"time"

	"github.com/battlesnakeio/arena/controller/filestore"
	"github.com/battlesnakeio/arena/rules"
	termbox "github.com/nsf/termbox-go"
	"github.com/spf13/cobra"
)

var (
	replayDir   string
	replayDelay = 50 * time.Millisecond
)

func init() {
	replayCmd.Flags().StringVarP(&sessionID, "session-id", "s", "", "the id of the recorded session")
	replayCmd.Flags().StringVarP(&replayDir, "dir", "d", "", "directory holding frame logs, defaults to ~/.arena/sessions")
	replayCmd.Flags().DurationVar(&replayDelay, "delay", replayDelay, "delay between frames")
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "replays a recorded session, space pauses, arrows step",
	Args:  requireSessionID,
	RunE: func(*cobra.Command, []string) error {
		_, recorded, err := filestore.ReadFrames(replayDir, sessionID)
		if err != nil {
			return err
		}
		if len(recorded) == 0 {
			return fmt.Errorf("session %s has no recorded frames", sessionID)
		}
		frames := newFrameHolder()
		for _, f := range recorded {
			frames.append(f)
		}
		return replaySession(frames)
	},
}

func moveFrameForwards(frameIndex int, frames *frameHolder) (int, *rules.Snapshot, bool) {
	frameIndex++
	if frameIndex >= frames.count() {
		return frameIndex, nil, true
	}
	return frameIndex, frames.get(frameIndex), false
}

func moveFrameBackwards(frameIndex int, frames *frameHolder) (int, *rules.Snapshot) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames.get(frameIndex)
}

func replaySession(frames *frameHolder) error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	eventQueue := setupEventQueue()
	currentFrame := <-frames.initialFrame()

	cycle := time.NewTicker(replayDelay)
	defer cycle.Stop()
	frameIndex := 0
	paused := false
	done := false

	for !done {
		select {
		case ev := <-eventQueue:
			if ev.Type != termbox.EventKey {
				continue
			}
			switch ev.Key {
			case termbox.KeyEsc:
				return nil
			case termbox.KeySpace:
				paused = !paused
			case termbox.KeyArrowLeft:
				paused = true
				frameIndex, currentFrame = moveFrameBackwards(frameIndex, frames)
				if err := render(currentFrame); err != nil {
					return err
				}
			case termbox.KeyArrowRight:
				paused = true
				frameIndex, currentFrame, done = moveFrameForwards(frameIndex, frames)
				if done {
					continue
				}
				if err := render(currentFrame); err != nil {
					return err
				}
			}
		case <-cycle.C:
			if paused {
				continue
			}
			if err := render(currentFrame); err != nil {
				return err
			}
			frameIndex, currentFrame, done = moveFrameForwards(frameIndex, frames)
		}
	}

	tbprint(0, 0, defaultColor, defaultColor, "Press any key to exit...")
	if err := termbox.Flush(); err != nil {
		return err
	}
	<-eventQueue
	return nil
}
