package service

import (
	"context"
	"fmt"
	"time"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/password"
	post "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/domain"
	postrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/persistence/repository/port"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

// usernameChangeCooldown is how long a user must wait between username changes.
const usernameChangeCooldown = 14 * 24 * time.Hour

type Service struct {
	users userrepo.UserRepository
	posts postrepo.PostRepository
	now   func() time.Time
}

func NewService(users userrepo.UserRepository, posts postrepo.PostRepository) *Service {
	return &Service{users: users, posts: posts, now: time.Now}
}

// ProfileCounts are the counters shown on a profile page.
type ProfileCounts struct {
	Posts     int `json:"posts"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// ProfileView is a profile with counters and the post grid resolved.
type ProfileView struct {
	ID       string           `json:"id"`
	Username string           `json:"username"`
	Name     *string          `json:"name"`
	Bio      *string          `json:"bio"`
	Ava      *string          `json:"ava"`
	Banned   bool             `json:"banned"`
	Counts   ProfileCounts    `json:"counts"`
	Posts    []post.Thumbnail `json:"posts"`
}

// BuildProfile assembles the profile view for an already-loaded account.
func (s *Service) BuildProfile(ctx context.Context, u *user.User) (*ProfileView, error) {
	posts, followers, following, err := s.users.Counts(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("profile counts: %w", err)
	}
	thumbs, err := s.posts.ListThumbnails(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("profile posts: %w", err)
	}
	if thumbs == nil {
		thumbs = []post.Thumbnail{}
	}
	return &ProfileView{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Bio:      u.Bio,
		Ava:      u.Ava,
		Banned:   u.Banned(),
		Counts:   ProfileCounts{Posts: posts, Followers: followers, Following: following},
		Posts:    thumbs,
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, u *user.User) (*ProfileView, error) {
	return s.BuildProfile(ctx, u)
}

// UpdateProfileInput carries the optional profile fields; nil means unchanged.
type UpdateProfileInput struct {
	Username *string
	Name     *string
	Bio      *string
}

// UpdateProfileResult reports the updated account, plus a message when the
// username change was refused by the cooldown.
type UpdateProfileResult struct {
	User    *user.Public `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// UpdateProfile updates name and bio freely; the username can change at most
// once every 14 days and must be unique.
func (s *Service) UpdateProfile(ctx context.Context, u *user.User, in UpdateProfileInput) (*UpdateProfileResult, error) {
	result := &UpdateProfileResult{}

	if in.Name != nil || in.Bio != nil {
		name, bio := u.Name, u.Bio
		if in.Name != nil {
			name = in.Name
		}
		if in.Bio != nil {
			bio = in.Bio
		}
		if err := s.users.UpdateProfile(ctx, u.ID, name, bio); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		u.Name, u.Bio = name, bio
		pub := u.PublicView()
		result.User = &pub
	}

	if in.Username != nil && *in.Username != "" && *in.Username != u.Username {
		existing, err := s.users.FindByUsername(ctx, *in.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if existing != nil && existing.ID != u.ID {
			return nil, apperr.Forbidden("This username was taken")
		}

		elapsed := s.now().Sub(u.UsernameLastChanged)
		if elapsed < usernameChangeCooldown {
			left := int((usernameChangeCooldown - elapsed).Hours()/24) + 1
			result.Message = fmt.Sprintf("There is %d day(s) left until you can change your username.", left)
			return result, nil
		}

		if err := s.users.UpdateUsername(ctx, u.ID, *in.Username); err != nil {
			return nil, fmt.Errorf("update username: %w", err)
		}
		u.Username = *in.Username
		pub := u.PublicView()
		result.User = &pub
	}

	return result, nil
}

func (s *Service) UploadAva(ctx context.Context, userID, url string) (string, error) {
	if url == "" {
		return "", apperr.Forbidden("A media is required")
	}
	if err := s.users.UpdateAvatar(ctx, userID, &url); err != nil {
		return "", fmt.Errorf("update avatar: %w", err)
	}
	return url, nil
}

func (s *Service) RemoveAva(ctx context.Context, userID string) error {
	return s.users.UpdateAvatar(ctx, userID, nil)
}

func (s *Service) ChangePassword(ctx context.Context, u *user.User, oldPass, newPass, confirmPass string) error {
	if !password.Matches(u.PasswordHash, oldPass) {
		return apperr.Forbidden("Old password incorrect")
	}
	if len(newPass) < 6 {
		return apperr.Forbidden("Password must be more than 6 characters!")
	}
	if newPass != confirmPass {
		return apperr.Forbidden("Confirm password incorrect!")
	}
	hash, err := password.Hash(newPass)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}
