package models

import (
	"time"
)

// EventKind enumerates the notification events emitted on draw mutations.
type EventKind string

const (
	EventStateChanged      EventKind = "state-changed"
	EventWinnerPreselected EventKind = "winner-preselected"
	EventWinnerChanged     EventKind = "winner-changed"
	EventPublished         EventKind = "published"
)

// NotificationEvent is the transient payload broadcast to real-time
// subscribers and external sinks on every draw mutation. Events are not
// persisted; delivery is fire-and-forget, at-least-once, to subscribers
// active at emission time.
type NotificationEvent struct {
	DrawID    string    `json:"drawId"`
	Kind      EventKind `json:"kind"`
	Payload   *Draw     `json:"payload"`
	EmittedAt time.Time `json:"emittedAt"`
}
