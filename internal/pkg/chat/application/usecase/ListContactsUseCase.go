package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/persistence/repository/port"
)

// ListContactsOutput splits the contact list into users the caller has a
// thread with (unread ones first) and users they have never messaged.
type ListContactsOutput struct {
	Contacted   []chat.Contact `json:"contacted"`
	Uncontacted []chat.Contact `json:"uncontacted"`
}

type ListContactsUseCase struct {
	Repo repository.ChatRepository
}

func NewListContactsUseCase(repo repository.ChatRepository) *ListContactsUseCase {
	return &ListContactsUseCase{Repo: repo}
}

func (uc *ListContactsUseCase) Execute(ctx context.Context, userID string) (*ListContactsOutput, error) {
	contacted, err := uc.Repo.ListContacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uncontacted, err := uc.Repo.ListUncontacted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Threads with an unread incoming message float to the top, keeping the
	// recency order within each group.
	unread, rest := lo.FilterReject(contacted, func(ct chat.Contact, _ int) bool {
		return ct.Message != nil && !ct.Message.Read && ct.Message.SenderID != userID
	})

	return &ListContactsOutput{
		Contacted:   append(unread, rest...),
		Uncontacted: uncontacted,
	}, nil
}
