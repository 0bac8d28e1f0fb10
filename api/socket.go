package api

import (
	"net/http"
	"time"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/rules"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// socketPoll is how often a socket checks the store for a newer frame.
var socketPoll = 30 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1 << 16,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// streamFrames sends every newly published frame of a session as a binary
// message. Once the session stops running the last frame is sent and the
// socket is closed normally.
func streamFrames(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c *controller.Controller) {
	id := ps.ByName("id")
	ctx := r.Context()
	if _, err := c.Store.GetSession(ctx, id); err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).WithField("SessionID", id).Warn("unable to upgrade connection")
		return
	}
	defer conn.Close()

	fields := log.Fields{"SessionID": id, "Remote": r.RemoteAddr}
	log.WithFields(fields).Info("socket opened")
	defer log.WithFields(fields).Info("socket closed")

	// The read side only serves pongs and close frames.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).WithFields(fields).Warn("socket read failed")
				}
				return
			}
		}
	}()

	poll := time.NewTicker(socketPoll)
	defer poll.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var last *rules.Snapshot
	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-poll.C:
			// Read the status first so the final frame of a finished session
			// is never missed.
			sess, err := c.Store.GetSession(ctx, id)
			if err != nil {
				log.WithError(err).WithFields(fields).Error("unable to load session")
				return
			}
			frames, err := c.Store.ListFrames(ctx, id, 1, -1)
			if err != nil {
				log.WithError(err).WithFields(fields).Error("unable to list frames")
				return
			}
			if len(frames) > 0 && (last == nil || frames[0].Turn != last.Turn) {
				last = frames[0]
				if err := writeFrame(conn, last); err != nil {
					log.WithError(err).WithFields(fields).Warn("unable to write frame")
					return
				}
			}
			if sess.Status != rules.SessionStatusRunning {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, sess.Status))
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, frame *rules.Snapshot) error {
	data, err := EncodeFrame(frame)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, data)
}
