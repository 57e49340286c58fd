package service

import (
	"context"
	"fmt"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	chatuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/usecase"
	interact "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/persistence/repository/port"
	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
	notifyuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/usecase"
	notifyrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/persistence/repository/port"
	postrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/persistence/repository/port"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

// Service implements likes, comments, follows, the notification inbox and
// post sharing.
type Service struct {
	repo     repository.InteractRepository
	posts    postrepo.PostRepository
	users    userrepo.UserRepository
	notis    notifyrepo.NotificationRepository
	notifier *notifyuc.NotifyUserUseCase
	sender   *chatuc.SendDirectMessageUseCase
}

func NewService(repo repository.InteractRepository, posts postrepo.PostRepository,
	users userrepo.UserRepository, notis notifyrepo.NotificationRepository,
	notifier *notifyuc.NotifyUserUseCase, sender *chatuc.SendDirectMessageUseCase) *Service {
	return &Service{repo: repo, posts: posts, users: users, notis: notis, notifier: notifier, sender: sender}
}

// LikePostResult reports the like plus the notification, if one was produced.
type LikePostResult struct {
	Like *interact.Like       `json:"like"`
	Noti *notify.Notification `json:"noti,omitempty"`
}

// LikePost records or updates the caller's reaction. Re-reacting changes the
// kind in place without a second notification; liking your own post never
// notifies.
func (s *Service) LikePost(ctx context.Context, userID, postID, react string) (*LikePostResult, error) {
	reaction := interact.ParseReaction(react)

	existing, err := s.repo.FindLike(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("find like: %w", err)
	}
	if existing != nil {
		updated, err := s.repo.UpdateLikeReact(ctx, existing.ID, reaction)
		if err != nil {
			return nil, fmt.Errorf("update like: %w", err)
		}
		return &LikePostResult{Like: updated}, nil
	}

	like, err := s.repo.CreateLike(ctx, postID, userID, reaction)
	if err != nil {
		return nil, fmt.Errorf("create like: %w", err)
	}

	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	if p == nil || p.UserID == userID {
		return &LikePostResult{Like: like}, nil
	}

	noti, err := s.notifier.Execute(ctx, notifyuc.NotifyUserInput{
		InteractedID: userID,
		NotifiedID:   p.UserID,
		Kind:         notify.KindLike,
		PostID:       &postID,
	})
	if err != nil {
		return nil, err
	}
	return &LikePostResult{Like: like, Noti: noti}, nil
}

// DislikePost removes the caller's reaction and the notification it produced.
func (s *Service) DislikePost(ctx context.Context, userID, postID string) (string, error) {
	existing, err := s.repo.FindLike(ctx, postID, userID)
	if err != nil {
		return "", fmt.Errorf("find like: %w", err)
	}
	if existing == nil {
		return "", apperr.Forbidden("You haven't liked this post yet")
	}
	if err := s.repo.DeleteLike(ctx, existing.ID); err != nil {
		return "", fmt.Errorf("delete like: %w", err)
	}

	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return "", fmt.Errorf("load post: %w", err)
	}
	if p != nil && p.UserID != userID {
		if err := s.notis.DeleteMatching(ctx, userID, p.UserID, notify.KindLike, &postID); err != nil {
			return "", fmt.Errorf("delete notification: %w", err)
		}
		return "Like and noti removed", nil
	}
	return "Like removed", nil
}

// CommentResult reports the comment plus the notification, if one was produced.
type CommentResult struct {
	Cmt  *interact.Comment    `json:"cmt"`
	Noti *notify.Notification `json:"noti,omitempty"`
}

func (s *Service) Comment(ctx context.Context, userID, postID, text string) (*CommentResult, error) {
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}

	cmt, err := s.repo.CreateComment(ctx, postID, userID, text)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	if p == nil || p.UserID == userID {
		return &CommentResult{Cmt: cmt}, nil
	}

	noti, err := s.notifier.Execute(ctx, notifyuc.NotifyUserInput{
		InteractedID: userID,
		NotifiedID:   p.UserID,
		Kind:         notify.KindComment,
		PostID:       &p.ID,
	})
	if err != nil {
		return nil, err
	}
	return &CommentResult{Cmt: cmt, Noti: noti}, nil
}

// FollowResult reports the follow edge plus its notification.
type FollowResult struct {
	Follow *interact.Follow     `json:"follow"`
	Noti   *notify.Notification `json:"noti"`
}

func (s *Service) FollowUser(ctx context.Context, userID, targetID string) (*FollowResult, error) {
	if userID == targetID {
		return nil, apperr.Forbidden("You can't follow yourself")
	}

	followed, err := s.CheckIfUserFollowed(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}
	if followed {
		return nil, apperr.Forbidden("You followed this user")
	}

	follow, err := s.repo.CreateFollow(ctx, userID, targetID)
	if err != nil {
		return nil, fmt.Errorf("create follow: %w", err)
	}

	noti, err := s.notifier.Execute(ctx, notifyuc.NotifyUserInput{
		InteractedID: userID,
		NotifiedID:   targetID,
		Kind:         notify.KindFollow,
	})
	if err != nil {
		return nil, err
	}
	return &FollowResult{Follow: follow, Noti: noti}, nil
}

// CheckIfUserFollowed reports whether the caller follows the target. The
// target must exist.
func (s *Service) CheckIfUserFollowed(ctx context.Context, userID, targetID string) (bool, error) {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return false, fmt.Errorf("load user: %w", err)
	}
	if target == nil {
		return false, apperr.NotFound("user not found")
	}
	return s.repo.FollowExists(ctx, userID, targetID)
}

func (s *Service) UnfollowUser(ctx context.Context, userID, targetID string) (string, error) {
	followed, err := s.CheckIfUserFollowed(ctx, userID, targetID)
	if err != nil {
		return "", err
	}
	if !followed {
		return "", apperr.Forbidden("You didn't follow this user")
	}

	if err := s.repo.DeleteFollow(ctx, userID, targetID); err != nil {
		return "", fmt.Errorf("delete follow: %w", err)
	}
	if err := s.notis.DeleteMatching(ctx, userID, targetID, notify.KindFollow, nil); err != nil {
		return "", fmt.Errorf("delete notification: %w", err)
	}
	return "Follow and noti deleted", nil
}

func (s *Service) GetUserNotification(ctx context.Context, userID string) ([]notify.View, error) {
	return s.notis.ListForUser(ctx, userID)
}

// ReadNoti marks a notification read. Only the notified user may do so.
func (s *Service) ReadNoti(ctx context.Context, userID, notiID string) (*notify.Notification, error) {
	noti, err := s.notis.FindByID(ctx, notiID)
	if err != nil {
		return nil, fmt.Errorf("load notification: %w", err)
	}
	if noti == nil {
		return nil, apperr.NotFound("notification not found")
	}
	if noti.NotifiedID != userID {
		return nil, apperr.Forbidden("Not your noti")
	}
	if err := s.notis.MarkRead(ctx, notiID); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	noti.Read = true
	return noti, nil
}

// SharePost sends a post link to another user as a direct message.
func (s *Service) SharePost(ctx context.Context, userID, targetID, link string) (string, error) {
	_, err := s.sender.Execute(ctx, chatuc.SendDirectMessageInput{
		SenderID:    userID,
		RecipientID: targetID,
		Body:        link,
	})
	if err != nil {
		return "", err
	}
	return "Message sent", nil
}
