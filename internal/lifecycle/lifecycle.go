// Package lifecycle tracks the status of a single asynchronous request slot.
//
// A Lifecycle allows at most one request in flight. Every Begin hands out a
// fresh epoch; results must present that epoch to be applied, so responses
// belonging to a superseded or reset slot are dropped.
package lifecycle

import "fmt"

// State is the tagged status of the request slot.
type State int

const (
	Idle State = iota
	InFlight
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Lifecycle is not safe for concurrent use; owners mutate it from the UI
// update loop only.
type Lifecycle struct {
	state  State
	reason string
	epoch  uint64
}

// Begin moves the slot to InFlight and returns the epoch of the new request.
// It reports false, leaving the slot untouched, when a request is already in
// flight.
func (l *Lifecycle) Begin() (uint64, bool) {
	if l.state == InFlight {
		return 0, false
	}
	l.epoch++
	l.state = InFlight
	l.reason = ""
	return l.epoch, true
}

// Current reports whether epoch belongs to the request currently in flight.
func (l *Lifecycle) Current(epoch uint64) bool {
	return l.state == InFlight && epoch == l.epoch
}

// Succeed resolves the in-flight request. Stale epochs are ignored.
func (l *Lifecycle) Succeed(epoch uint64) bool {
	if !l.Current(epoch) {
		return false
	}
	l.state = Succeeded
	return true
}

// Fail resolves the in-flight request with a human-readable reason. Stale
// epochs are ignored.
func (l *Lifecycle) Fail(epoch uint64, reason string) bool {
	if !l.Current(epoch) {
		return false
	}
	l.state = Failed
	l.reason = reason
	return true
}

// Reset returns the slot to Idle and invalidates any outstanding epoch.
func (l *Lifecycle) Reset() {
	l.epoch++
	l.state = Idle
	l.reason = ""
}

func (l *Lifecycle) State() State   { return l.state }
func (l *Lifecycle) Reason() string { return l.reason }
func (l *Lifecycle) InFlight() bool { return l.state == InFlight }
func (l *Lifecycle) CanStart() bool { return l.state != InFlight }
