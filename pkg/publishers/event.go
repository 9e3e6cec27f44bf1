package publishers

import (
	"time"

	"github.com/google/uuid"
)

// Event reports a change in a target's reachability.
// Previous is nil the first time a target is observed.
type Event struct {
	ID         string    `json:"id"`
	TargetID   string    `json:"target_id"`
	TargetName string    `json:"target_name"`
	TargetType string    `json:"target_type"`
	Reachable  bool      `json:"reachable"`
	Previous   *bool     `json:"previous,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
	LatencyMs  int64     `json:"latency_ms"`
	Error      string    `json:"error,omitempty"`
}

// NewEvent constructs an Event for the given target transition.
func NewEvent(targetID, targetName, targetType string, reachable bool, previous *bool) Event {
	return Event{
		ID:         uuid.NewString(),
		TargetID:   targetID,
		TargetName: targetName,
		TargetType: targetType,
		Reachable:  reachable,
		Previous:   previous,
		CheckedAt:  time.Now().UTC(),
	}
}

// State renders Reachable as "up" or "down" for message attributes.
func (e Event) State() string {
	if e.Reachable {
		return "up"
	}
	return "down"
}
