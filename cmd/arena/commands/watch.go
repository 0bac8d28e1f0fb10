package commands

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/battlesnakeio/arena/api"
	"github.com/battlesnakeio/arena/rules"
	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const turnStep = math.Pi / 12

func init() {
	watchCmd.Flags().StringVarP(&sessionID, "session-id", "s", "", "the id of the session to watch")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watches a live session, arrows steer, space boosts, r restarts",
	Args:  requireSessionID,
	RunE: func(*cobra.Command, []string) error {
		if _, err := getStatus(sessionID); err != nil {
			return err
		}
		frames, closed, err := streamFrames(sessionID)
		if err != nil {
			return err
		}
		return watchSession(frames, closed)
	},
}

// streamFrames collects frames from the session socket until it closes.
func streamFrames(id string) (*frameHolder, <-chan struct{}, error) {
	u := url.URL{
		Scheme: "ws",
		Host:   strings.TrimPrefix(strings.TrimPrefix(apiAddr, "http://"), "https://"),
		Path:   fmt.Sprintf("/socket/%s", id),
	}
	if strings.HasPrefix(apiAddr, "https://") {
		u.Scheme = "wss"
	}
	log.WithField("url", u.String()).Debug("connecting")

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, nil, err
	}

	frames := newFrameHolder()
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		defer c.Close()

		for {
			mt, message, err := c.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.WithError(err).Debug("read failed")
				}
				return
			}
			if mt != websocket.BinaryMessage {
				continue
			}
			frame, err := api.DecodeFrame(message)
			if err != nil {
				log.WithError(err).Debug("unable to decode frame")
				return
			}
			frames.append(frame)
		}
	}()
	return frames, closed, nil
}

func watchSession(frames *frameHolder, closed <-chan struct{}) error {
	var first *rules.Snapshot
	select {
	case first = <-frames.initialFrame():
	case <-closed:
		return fmt.Errorf("session closed before sending a frame")
	case <-time.After(5 * time.Second):
		return fmt.Errorf("no frame received for session %s", sessionID)
	}

	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	eventQueue := setupEventQueue()
	redraw := time.NewTicker(33 * time.Millisecond)
	defer redraw.Stop()

	in := rules.Input{Heading: first.Player.Heading, Steer: true}
	send := func() {
		if err := postInput(sessionID, in); err != nil {
			log.WithError(err).Warn("unable to send input")
		}
	}

	for {
		select {
		case ev := <-eventQueue:
			if ev.Type != termbox.EventKey {
				continue
			}
			switch {
			case ev.Key == termbox.KeyEsc || ev.Ch == 'q':
				return nil
			case ev.Key == termbox.KeyArrowLeft:
				in.Heading -= turnStep
				send()
			case ev.Key == termbox.KeyArrowRight:
				in.Heading += turnStep
				send()
			case ev.Key == termbox.KeySpace:
				in.Boost = !in.Boost
				send()
			case ev.Ch == 'r':
				if err := postRestart(sessionID); err != nil {
					log.WithError(err).Warn("unable to restart")
				}
			}
		case <-redraw.C:
			if err := render(frames.last()); err != nil {
				return err
			}
		case <-closed:
			tbprint(0, 0, defaultColor, defaultColor, "Session ended, press any key to exit...")
			if err := termbox.Flush(); err != nil {
				return err
			}
			<-eventQueue
			return nil
		}
	}
}
