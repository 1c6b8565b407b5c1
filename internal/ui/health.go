package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pitchdeck/internal/docgen"
)

type healthStatus int

const (
	healthUnknown healthStatus = iota
	healthChecking
	healthOnline
	healthOffline
)

// healthState tracks the one-shot backend check. Checks only run at startup
// and on demand.
type healthState struct {
	status  healthStatus
	message string
	checked time.Time
	seq     uint64
}

type healthMsg struct {
	seq    uint64
	health docgen.Health
	err    error
	at     time.Time
}

type pinger interface {
	Ping(ctx context.Context) (docgen.Health, error)
}

// start begins a new check and returns its sequence number. Results of an
// older check are ignored once a newer one has started.
func (h *healthState) start(svc pinger) uint64 {
	if svc == nil {
		h.status = healthOffline
		h.message = "no service configured"
		return h.seq
	}
	h.seq++
	h.status = healthChecking
	return h.seq
}

// checkCmd pings the service once.
func checkCmd(ctx context.Context, svc pinger, seq uint64) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		checkCtx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
		defer cancel()
		health, err := svc.Ping(checkCtx)
		return healthMsg{seq: seq, health: health, err: err, at: time.Now()}
	}
}

func (h *healthState) apply(msg healthMsg) {
	if msg.seq != h.seq {
		return
	}
	h.checked = msg.at
	switch {
	case msg.err != nil:
		h.status = healthOffline
		h.message = docgen.Describe(msg.err, "unreachable")
	case !msg.health.OK():
		h.status = healthOffline
		h.message = "status " + msg.health.Status
	default:
		h.status = healthOnline
		h.message = msg.health.Message
	}
}
