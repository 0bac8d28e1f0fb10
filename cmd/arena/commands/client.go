package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/rules"
	"github.com/pkg/errors"
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
}

// doJSON sends body (if any) as JSON and decodes a 2xx response into out.
func doJSON(method, path string, body, out interface{}) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "unable to marshal request")
		}
		buf = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, apiAddr+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "error while calling %s", path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "unable to read response body")
	}
	if resp.StatusCode >= 300 {
		return errors.Errorf("%s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(data))
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(data, out), "unable to unmarshal response")
}

func getStatus(id string) (*controller.Status, error) {
	st := &controller.Status{}
	if err := doJSON(http.MethodGet, fmt.Sprintf("/sessions/%s", id), nil, st); err != nil {
		return nil, err
	}
	return st, nil
}

func postInput(id string, in rules.Input) error {
	return doJSON(http.MethodPost, fmt.Sprintf("/sessions/%s/input", id), in, nil)
}

func postRestart(id string) error {
	return doJSON(http.MethodPost, fmt.Sprintf("/sessions/%s/restart", id), nil, nil)
}
