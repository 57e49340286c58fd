package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/persistence/repository/port"
)

// Pusher delivers an event to a user's live socket, reporting delivery.
type Pusher interface {
	Notify(userID string, e realtime.Event) bool
}

// SendDirectMessageInput carries one direct message from sender to recipient.
type SendDirectMessageInput struct {
	SenderID    string
	RecipientID string
	Body        string
}

// SendDirectMessageUseCase implements the message path shared by the websocket
// gateway and post sharing: resolve the recipient, resolve the conversation,
// mark the recipient's prior messages read, persist the new message, then
// push onMessage to the recipient's live socket if any.
type SendDirectMessageUseCase struct {
	Repo      repository.ChatRepository
	Recipient *FindRecipientUseCase
	Resolver  *ResolveConversationUseCase
	Pusher    Pusher
}

func NewSendDirectMessageUseCase(repo repository.ChatRepository, recipient *FindRecipientUseCase,
	resolver *ResolveConversationUseCase, pusher Pusher) *SendDirectMessageUseCase {
	return &SendDirectMessageUseCase{Repo: repo, Recipient: recipient, Resolver: resolver, Pusher: pusher}
}

func (uc *SendDirectMessageUseCase) Execute(ctx context.Context, in SendDirectMessageInput) (*chat.Message, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, chat.ErrEmptyBody
	}

	recipient, err := uc.Recipient.Execute(ctx, in.SenderID, in.RecipientID)
	if err != nil {
		return nil, err
	}

	conv, err := uc.Resolver.Execute(ctx, in.SenderID, recipient.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.MarkMessagesRead(ctx, conv.ID, recipient.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msg, err := uc.Repo.SaveMessage(ctx, conv.ID, in.SenderID, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Best effort: an offline recipient still has the durable message row.
	uc.Pusher.Notify(recipient.ID, realtime.MessageEvent{
		SenderID:  msg.SenderID,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	})

	return msg, nil
}
