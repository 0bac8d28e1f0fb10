package controller

import (
	"context"

	"github.com/battlesnakeio/arena/rules"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "store",
			Name:      "calls",
			Help:      "Calls processed by the store.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func() { t.ObserveDuration() }
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) Lock(ctx context.Context, key, token string) (string, error) {
	defer instrument("Lock")()
	return m.s.Lock(ctx, key, token)
}

func (m *metrics) Unlock(ctx context.Context, key, token string) error {
	defer instrument("Unlock")()
	return m.s.Unlock(ctx, key, token)
}

func (m *metrics) PopSessionID(c context.Context) (string, error) {
	defer instrument("PopSessionID")()
	return m.s.PopSessionID(c)
}

func (m *metrics) CreateSession(c context.Context, s *Session) error {
	defer instrument("CreateSession")()
	return m.s.CreateSession(c, s)
}

func (m *metrics) GetSession(c context.Context, id string) (*Session, error) {
	defer instrument("GetSession")()
	return m.s.GetSession(c, id)
}

func (m *metrics) SetSessionStatus(c context.Context, id string, status string) error {
	defer instrument("SetSessionStatus")()
	return m.s.SetSessionStatus(c, id, status)
}

func (m *metrics) PushFrame(c context.Context, id string, f *rules.Snapshot) error {
	defer instrument("PushFrame")()
	return m.s.PushFrame(c, id, f)
}

func (m *metrics) ListFrames(c context.Context, id string, limit, offset int) ([]*rules.Snapshot, error) {
	defer instrument("ListFrames")()
	return m.s.ListFrames(c, id, limit, offset)
}

func (m *metrics) SetInput(c context.Context, id string, in rules.Input) error {
	defer instrument("SetInput")()
	return m.s.SetInput(c, id, in)
}

func (m *metrics) RequestRestart(c context.Context, id string) error {
	defer instrument("RequestRestart")()
	return m.s.RequestRestart(c, id)
}

func (m *metrics) TakeCommands(c context.Context, id string) (Commands, error) {
	defer instrument("TakeCommands")()
	return m.s.TakeCommands(c, id)
}
