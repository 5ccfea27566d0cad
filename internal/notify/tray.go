package notify

import (
	"time"
)

// Tray holds one owner's notifications in issue order. It is not safe for concurrent use.
type Tray struct {
	items    []Notification
	capacity int
}

// NewTray returns a tray keeping at most capacity live notifications; capacity <= 0 means unbounded.
func NewTray(capacity int) *Tray {
	return &Tray{capacity: capacity}
}

// Push drops finished notifications, then every live one sharing n.Class.
// Notifications without a class stack. Past capacity the oldest are dropped.
func (t *Tray) Push(n Notification, now time.Time) {
	kept := t.items[:0]
	for _, item := range t.items {
		if item.PhaseAt(now) == PhaseAbsent {
			continue
		}
		if n.Class != "" && item.Class == n.Class {
			continue
		}
		kept = append(kept, item)
	}

	t.items = append(kept, n)

	if t.capacity > 0 && len(t.items) > t.capacity {
		t.items = t.items[len(t.items)-t.capacity:]
	}
}

// Active returns the notifications that are still on screen at now.
func (t *Tray) Active(now time.Time) []Snapshot {
	var result []Snapshot

	kept := t.items[:0]
	for _, item := range t.items {
		snapshot := item.SnapshotAt(now)
		if snapshot.Phase == PhaseAbsent {
			continue
		}
		kept = append(kept, item)
		result = append(result, snapshot)
	}
	t.items = kept

	return result
}

func (t *Tray) Len() int {
	return len(t.items)
}
