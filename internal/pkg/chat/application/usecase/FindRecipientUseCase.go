package usecase

import (
	"context"
	"fmt"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

// FindRecipientUseCase resolves and validates the target of a direct message.
// Messaging yourself is a business-rule violation, not a transport error.
type FindRecipientUseCase struct {
	Users userrepo.UserRepository
}

func NewFindRecipientUseCase(users userrepo.UserRepository) *FindRecipientUseCase {
	return &FindRecipientUseCase{Users: users}
}

func (uc *FindRecipientUseCase) Execute(ctx context.Context, senderID, recipientID string) (*user.User, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("recipient id is required")
	}
	recipient, err := uc.Users.FindByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if recipient == nil {
		return nil, apperr.NotFound("recipient not found")
	}
	if recipient.ID == senderID {
		return nil, apperr.Forbidden("You can't text yourself")
	}
	return recipient, nil
}
