package service

import (
	"context"
	"fmt"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	post "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/domain"
	postrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/persistence/repository/port"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
	usersvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/service"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

const searchLimit = 20

// Service implements the unauthenticated read surface: user search, public
// post views and public profiles. Banned accounts are invisible here.
type Service struct {
	users    userrepo.UserRepository
	posts    postrepo.PostRepository
	profiles *usersvc.Service
}

func NewService(users userrepo.UserRepository, posts postrepo.PostRepository, profiles *usersvc.Service) *Service {
	return &Service{users: users, posts: posts, profiles: profiles}
}

func (s *Service) SearchUser(ctx context.Context, query string) ([]user.Public, error) {
	found, err := s.users.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	results := make([]user.Public, 0, len(found))
	for i := range found {
		results = append(results, found[i].PublicView())
	}
	return results, nil
}

func (s *Service) ViewPost(ctx context.Context, id string) (*post.Detail, error) {
	detail, err := s.posts.FindDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	if detail == nil {
		return nil, apperr.NotFound("Post not found")
	}
	if detail.DeletedAt != nil {
		return nil, apperr.Forbidden("This post was deleted")
	}
	detail.DeleteReason = nil
	return detail, nil
}

func (s *Service) ViewUserProfile(ctx context.Context, username string) (*usersvc.ProfileView, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if u == nil {
		return nil, apperr.NotFound("Profile not exist")
	}
	if u.Banned() {
		return nil, apperr.Forbidden("This profile no longer exist")
	}
	return s.profiles.BuildProfile(ctx, u)
}
