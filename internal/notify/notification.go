// Package notify models transient storefront banners as a timed state machine.
//
// A notification is visible for VisibleFor after it is issued, then dismissing for DismissFor
// (the exit animation), then absent. Phases are computed from the issue time, nothing is scheduled.
package notify

import (
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Phase string

const (
	PhaseAbsent     Phase = "absent"
	PhaseVisible    Phase = "visible"
	PhaseDismissing Phase = "dismissing"
)

const (
	VisibleFor = 3000 * time.Millisecond
	DismissFor = 300 * time.Millisecond
)

// Notification keeps its message in the source (Russian) form; it is translated when rendered.
type Notification struct {
	ID       string
	Class    string
	Kind     Kind
	Message  string
	IssuedAt time.Time
}

func (n Notification) PhaseAt(now time.Time) Phase {
	elapsed := now.Sub(n.IssuedAt)

	switch {
	case elapsed < VisibleFor:
		return PhaseVisible
	case elapsed < VisibleFor+DismissFor:
		return PhaseDismissing
	default:
		return PhaseAbsent
	}
}

// RemainingAt is the time left in the phase n is in at now.
func (n Notification) RemainingAt(now time.Time) time.Duration {
	elapsed := now.Sub(n.IssuedAt)

	switch n.PhaseAt(now) {
	case PhaseVisible:
		return VisibleFor - max(elapsed, 0)
	case PhaseDismissing:
		return VisibleFor + DismissFor - elapsed
	default:
		return 0
	}
}

type Snapshot struct {
	Notification
	Phase     Phase
	Remaining time.Duration
}

func (n Notification) SnapshotAt(now time.Time) Snapshot {
	return Snapshot{
		Notification: n,
		Phase:        n.PhaseAt(now),
		Remaining:    n.RemainingAt(now),
	}
}
