package realtime

import (
	"encoding/json"
	"time"
)

// Event is a server-pushed frame. Every event kind carries a fixed, typed payload;
// the wire format is an envelope {"event": <name>, "data": <payload>}.
type Event interface {
	EventName() string
}

// InitEvent welcomes a freshly authenticated socket.
type InitEvent struct {
	Message string `json:"message"`
}

func (InitEvent) EventName() string { return "init" }

// MessageEvent delivers a direct message to the recipient's live socket.
type MessageEvent struct {
	SenderID  string    `json:"senderId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (MessageEvent) EventName() string { return "onMessage" }

// NotificationEvent tells the target user a durable notification was written.
type NotificationEvent struct {
	Message string `json:"message"`
}

func (NotificationEvent) EventName() string { return "onNotification" }

// ReportEvent alerts connected admins about a new moderation report.
type ReportEvent struct {
	Message string `json:"message"`
}

func (ReportEvent) EventName() string { return "onReport" }

// BanEvent tells a user their account was banned.
type BanEvent struct {
	Message string `json:"message"`
}

func (BanEvent) EventName() string { return "onBanned" }

// ErrorEvent is emitted before force-closing an unauthenticated socket.
type ErrorEvent struct {
	Message string `json:"message"`
}

func (ErrorEvent) EventName() string { return "Error" }

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// EncodeEvent marshals an event into its wire envelope.
func EncodeEvent(e Event) ([]byte, error) {
	return json.Marshal(envelope{Event: e.EventName(), Data: e})
}
