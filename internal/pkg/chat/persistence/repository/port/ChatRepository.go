package repository

import (
	"context"

	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for conversations and messages.
type ChatRepository interface {
	// FindByPair looks up the conversation for a normalized pair, (nil, nil)
	// when the two users have never talked.
	FindByPair(ctx context.Context, userA, userB string) (*chat.Conversation, error)
	// CreateByPair inserts the conversation for a normalized pair. It must be
	// safe under concurrent first contact from both sides: when the row
	// already exists the existing conversation is returned.
	CreateByPair(ctx context.Context, userA, userB string) (*chat.Conversation, error)

	SaveMessage(ctx context.Context, conversationID, senderID, body string) (*chat.Message, error)
	// MarkMessagesRead flips the read flag on every message sent by senderID
	// in the conversation.
	MarkMessagesRead(ctx context.Context, conversationID, senderID string) error
	// ListMessages returns the conversation history, newest first.
	ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error)

	// ListContacts returns the users the given user has a conversation with,
	// each carrying the latest message, most recent first. Banned counterparts
	// are excluded.
	ListContacts(ctx context.Context, userID string) ([]chat.Contact, error)
	// ListUncontacted returns users the given user has no conversation with.
	ListUncontacted(ctx context.Context, userID string) ([]chat.Contact, error)
}
