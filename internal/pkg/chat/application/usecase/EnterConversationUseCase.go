package usecase

import (
	"context"
	"fmt"

	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/persistence/repository/port"
)

// EnterConversationOutput is the thread view returned when a user opens a chat.
type EnterConversationOutput struct {
	Conversation *chat.Conversation `json:"conversation"`
	Messages     []chat.Message     `json:"messages"`
}

// EnterConversationUseCase opens (and creates if needed) the thread with the
// given user. Opening a thread marks the counterpart's messages as read.
type EnterConversationUseCase struct {
	Repo      repository.ChatRepository
	Recipient *FindRecipientUseCase
	Resolver  *ResolveConversationUseCase
}

func NewEnterConversationUseCase(repo repository.ChatRepository, recipient *FindRecipientUseCase,
	resolver *ResolveConversationUseCase) *EnterConversationUseCase {
	return &EnterConversationUseCase{Repo: repo, Recipient: recipient, Resolver: resolver}
}

func (uc *EnterConversationUseCase) Execute(ctx context.Context, userID, otherID string) (*EnterConversationOutput, error) {
	other, err := uc.Recipient.Execute(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	conv, err := uc.Resolver.Execute(ctx, userID, other.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.MarkMessagesRead(ctx, conv.ID, other.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msgs, err := uc.Repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &EnterConversationOutput{Conversation: conv, Messages: msgs}, nil
}
