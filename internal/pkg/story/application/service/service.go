package service

import (
	"context"
	"fmt"
	"time"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	story "github.com/trang-ptt/INSTARE-BE/internal/pkg/story/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/story/persistence/repository/port"
)

type Service struct {
	repo repository.StoryRepository
	now  func() time.Time
}

func NewService(repo repository.StoryRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) CreateStory(ctx context.Context, userID, mediaURL string) (*story.Story, error) {
	if mediaURL == "" {
		return nil, apperr.Forbidden("A media is required")
	}
	now := s.now()
	created, err := s.repo.Create(ctx, story.Story{
		UserID:    userID,
		Media:     mediaURL,
		ExpiredAt: now.Add(story.Lifetime),
	})
	if err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	return created, nil
}

func (s *Service) GetAllStoryBoxes(ctx context.Context, viewerID string) ([]story.Box, error) {
	return s.repo.ListBoxes(ctx, viewerID)
}

func (s *Service) GetUserStories(ctx context.Context, userID string) ([]story.View, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ReadStory records a view. A story can be marked read once per viewer.
func (s *Service) ReadStory(ctx context.Context, userID, storyID string) (*story.Read, error) {
	existing, err := s.repo.FindRead(ctx, storyID, userID)
	if err != nil {
		return nil, fmt.Errorf("find read: %w", err)
	}
	if existing != nil {
		return nil, apperr.Forbidden("You read this story")
	}
	rd, err := s.repo.CreateRead(ctx, storyID, userID)
	if err != nil {
		return nil, fmt.Errorf("create read: %w", err)
	}
	return rd, nil
}
