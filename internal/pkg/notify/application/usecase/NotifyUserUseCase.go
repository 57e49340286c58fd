package usecase

import (
	"context"
	"fmt"

	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/persistence/repository/port"
)

// Pusher delivers an event to a user's live socket, reporting delivery.
// Offline targets are a silent drop, never an error.
type Pusher interface {
	Notify(userID string, e realtime.Event) bool
}

// NotifyUserInput describes the interaction to record and announce.
type NotifyUserInput struct {
	InteractedID string
	NotifiedID   string
	Kind         notify.Kind
	PostID       *string
}

// NotifyUserUseCase writes the durable notification and then pushes a live
// event to the target's socket if one is bound. The durable write comes first
// so the recipient can retrieve history regardless of delivery.
type NotifyUserUseCase struct {
	Repo   repository.NotificationRepository
	Pusher Pusher
}

func NewNotifyUserUseCase(repo repository.NotificationRepository, pusher Pusher) *NotifyUserUseCase {
	return &NotifyUserUseCase{Repo: repo, Pusher: pusher}
}

// Execute persists and announces one notification.
func (uc *NotifyUserUseCase) Execute(ctx context.Context, in NotifyUserInput) (*notify.Notification, error) {
	if in.InteractedID == "" || in.NotifiedID == "" || in.Kind == "" {
		return nil, fmt.Errorf("interactedId, notifiedId and kind are required")
	}
	n, err := uc.Repo.Create(ctx, notify.Notification{
		InteractedID: in.InteractedID,
		NotifiedID:   in.NotifiedID,
		Kind:         in.Kind,
		PostID:       in.PostID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Pusher.Notify(in.NotifiedID, realtime.NotificationEvent{Message: "New Notification!"})
	return n, nil
}
