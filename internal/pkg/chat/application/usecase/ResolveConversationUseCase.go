package usecase

import (
	"context"
	"fmt"

	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/persistence/repository/port"
)

// ResolveConversationUseCase finds or lazily creates the unique two-party
// conversation between two users. Resolution is idempotent: repeated calls,
// in either argument order and from concurrent callers, converge on the same
// conversation because the pair is normalized and the insert lands on a
// unique constraint.
type ResolveConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewResolveConversationUseCase(repo repository.ChatRepository) *ResolveConversationUseCase {
	return &ResolveConversationUseCase{Repo: repo}
}

func (uc *ResolveConversationUseCase) Execute(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	if userA == "" || userB == "" {
		return nil, fmt.Errorf("both user ids are required")
	}
	if userA == userB {
		return nil, chat.ErrSelfMessage
	}

	a, b := chat.NormalizePair(userA, userB)

	conv, err := uc.Repo.FindByPair(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv != nil {
		return conv, nil
	}

	conv, err = uc.Repo.CreateByPair(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
