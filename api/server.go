// Package api is the HTTP front of the arena: session management, player
// input and a websocket stream of published frames.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/battlesnakeio/arena/controller"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Server is the arena API server.
type Server struct {
	hs *http.Server
}

type ctrlHandle func(http.ResponseWriter, *http.Request, httprouter.Params, *controller.Controller)

// New creates a new API server listening on addr.
func New(addr string, c *controller.Controller) *Server {
	router := httprouter.New()
	router.POST("/sessions", newCtrlHandle(c, createSession))
	router.GET("/sessions/:id", newCtrlHandle(c, getStatus))
	router.DELETE("/sessions/:id", newCtrlHandle(c, stopSession))
	router.GET("/sessions/:id/frames", newCtrlHandle(c, listFrames))
	router.POST("/sessions/:id/input", newCtrlHandle(c, setInput))
	router.POST("/sessions/:id/restart", newCtrlHandle(c, restartSession))
	router.GET("/socket/:id", newCtrlHandle(c, streamFrames))

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}).Handler(router)

	return &Server{
		hs: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() error {
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for open ones to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func newCtrlHandle(c *controller.Controller, h ctrlHandle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		h(w, r, ps, c)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}

// writeError maps store errors onto status codes, anything unknown is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.Cause(err) {
	case controller.ErrNotFound:
		status = http.StatusNotFound
	case controller.ErrIsLocked:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
