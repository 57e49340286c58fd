package chat

import (
	"errors"
	"time"
)

// Domain-level errors for chat behaviors
var (
	ErrSelfMessage = errors.New("chat: sender and recipient are the same user")
	ErrEmptyBody   = errors.New("chat: message body is empty")
)

// Conversation is the unique two-party thread between UserA and UserB.
// The pair is normalized (UserA < UserB) and immutable after creation;
// uniqueness per unordered pair is enforced by the database.
type Conversation struct {
	ID        string
	UserA     string
	UserB     string
	CreatedAt time.Time
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID string) string {
	if c.UserA == userID {
		return c.UserB
	}
	return c.UserA
}

// NormalizePair orders two user ids so {a,b} and {b,a} address the same
// conversation row.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// Message is one immutable entry in a conversation; only the read flag
// changes after creation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}
