package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/rules"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

func createSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params, c *controller.Controller) {
	req := controller.CreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.Wrap(err, "invalid body"))
		return
	}
	s, err := c.Create(r.Context(), req)
	if err != nil {
		// Store failures aren't expected here, everything else is a config
		// the arena refused.
		badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func getStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c *controller.Controller) {
	st, err := c.Status(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func stopSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c *controller.Controller) {
	if err := c.Stop(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func listFrames(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c *controller.Controller) {
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		badRequest(w, err)
		return
	}
	offset, err := intQuery(r, "offset", 0)
	if err != nil {
		badRequest(w, err)
		return
	}
	frames, err := c.Frames(r.Context(), ps.ByName("id"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if frames == nil {
		frames = []*rules.Snapshot{}
	}
	writeJSON(w, http.StatusOK, frames)
}

func setInput(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c *controller.Controller) {
	in := rules.Input{}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, errors.Wrap(err, "invalid body"))
		return
	}
	if err := c.Input(r.Context(), ps.ByName("id"), in); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func restartSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c *controller.Controller) {
	if err := c.Restart(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func intQuery(r *http.Request, name string, defaults int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaults, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return n, nil
}
