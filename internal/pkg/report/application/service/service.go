package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	qport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/queue/port"
	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/realtime"
	mailtask "github.com/trang-ptt/INSTARE-BE/internal/pkg/mail/application/task"
	notify "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/domain"
	notifyuc "github.com/trang-ptt/INSTARE-BE/internal/pkg/notify/application/usecase"
	post "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/domain"
	postrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/post/persistence/repository/port"
	report "github.com/trang-ptt/INSTARE-BE/internal/pkg/report/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/report/persistence/repository/port"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
	usersvc "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/service"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

// Pusher delivers an event to a user's live socket, reporting delivery.
type Pusher interface {
	Notify(userID string, e realtime.Event) bool
}

// Service implements moderation: filing reports, the admin queue, and
// resolution with its side effects (post takedown, account ban).
type Service struct {
	repo     repository.ReportRepository
	users    userrepo.UserRepository
	posts    postrepo.PostRepository
	profiles *usersvc.Service
	notifier *notifyuc.NotifyUserUseCase
	pusher   Pusher
	queue    qport.Client
	log      *zap.Logger
}

func NewService(repo repository.ReportRepository, users userrepo.UserRepository,
	posts postrepo.PostRepository, profiles *usersvc.Service, notifier *notifyuc.NotifyUserUseCase,
	pusher Pusher, queue qport.Client, log *zap.Logger) *Service {
	return &Service{repo: repo, users: users, posts: posts, profiles: profiles,
		notifier: notifier, pusher: pusher, queue: queue, log: log}
}

// CreateReportInput targets either a user (profile report) or a post.
type CreateReportInput struct {
	UserID *string
	PostID *string
	Reason string
}

// CreateReport files a complaint. An open report against the same target is
// reused; each reporter's reason is appended. Connected admins get a live
// onReport push.
func (s *Service) CreateReport(ctx context.Context, reporterID string, in CreateReportInput) error {
	if in.UserID == nil && in.PostID == nil {
		return apperr.Forbidden("Please provide userId for profile report or postId for post report")
	}

	var reportedUserID string
	if in.PostID != nil {
		p, err := s.posts.FindByID(ctx, *in.PostID)
		if err != nil {
			return fmt.Errorf("load post: %w", err)
		}
		if p == nil {
			return apperr.Forbidden(fmt.Sprintf("Post with id %s does not exist", *in.PostID))
		}
		reportedUserID = p.UserID
	} else {
		u, err := s.users.FindByID(ctx, *in.UserID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if u == nil {
			return apperr.Forbidden(fmt.Sprintf("User with id %s does not exist", *in.UserID))
		}
		reportedUserID = u.ID
	}

	if reportedUserID == reporterID {
		return apperr.Forbidden("You can't report yourself")
	}

	rp, err := s.repo.FindOpen(ctx, reportedUserID, in.PostID)
	if err != nil {
		return fmt.Errorf("find open report: %w", err)
	}
	if rp == nil {
		typ := report.TypeUser
		if in.PostID != nil {
			typ = report.TypePost
		}
		rp, err = s.repo.Create(ctx, reportedUserID, in.PostID, typ)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
	}

	if err := s.repo.AddReason(ctx, rp.ID, reporterID, in.Reason); err != nil {
		return fmt.Errorf("add reason: %w", err)
	}

	admins, err := s.users.Admins(ctx)
	if err != nil {
		s.log.Error("report push: load admins", zap.Error(err))
		return nil
	}
	for _, admin := range admins {
		s.pusher.Notify(admin.ID, realtime.ReportEvent{Message: "New Report!"})
	}
	return nil
}

func (s *Service) GetPostReports(ctx context.Context) ([]report.Summary, error) {
	return s.repo.ListByType(ctx, report.TypePost)
}

func (s *Service) GetProfileReports(ctx context.Context) ([]report.Summary, error) {
	return s.repo.ListByType(ctx, report.TypeUser)
}

// ReportView is the full report detail shown to an admin. Exactly one of Post
// and Profile is set, matching the report type.
type ReportView struct {
	Report  *report.Report       `json:"report"`
	Reasons []report.ReasonView  `json:"reasons"`
	Post    *post.Detail         `json:"post,omitempty"`
	Profile *usersvc.ProfileView `json:"profile,omitempty"`
}

func (s *Service) ViewReport(ctx context.Context, id string) (*ReportView, error) {
	rp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	if rp == nil {
		return nil, apperr.NotFound("Report not found")
	}

	reasons, err := s.repo.ListReasons(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load reasons: %w", err)
	}

	view := &ReportView{Report: rp, Reasons: reasons}

	if rp.PostID != nil {
		detail, err := s.posts.FindDetail(ctx, *rp.PostID)
		if err != nil {
			return nil, fmt.Errorf("load post: %w", err)
		}
		if detail == nil {
			return nil, apperr.NotFound("Post not found")
		}
		view.Post = detail
		return view, nil
	}

	accused, err := s.users.FindByID(ctx, rp.ReportedUserID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if accused == nil {
		return nil, apperr.NotFound("Profile not exist")
	}
	profile, err := s.profiles.BuildProfile(ctx, accused)
	if err != nil {
		return nil, err
	}
	view.Profile = profile
	return view, nil
}

// ResolveReport closes a report. A violated post is soft-deleted and its
// author notified; a violated profile is banned, pushed onBanned and mailed.
func (s *Service) ResolveReport(ctx context.Context, adminID, id string, violated bool, reason string) error {
	rp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}
	if rp == nil {
		return apperr.NotFound("Report not found")
	}
	if rp.Resolved {
		return apperr.Forbidden("Report already resolved")
	}
	if violated && reason == "" {
		return apperr.Forbidden("Please give a reason why this post/user is violated")
	}

	accused, err := s.users.FindByID(ctx, rp.ReportedUserID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if accused == nil {
		return apperr.NotFound("User not found")
	}

	if rp.PostID != nil {
		if err := s.resolvePostReport(ctx, adminID, rp, violated, reason); err != nil {
			return err
		}
	} else {
		if err := s.resolveProfileReport(ctx, accused, violated, reason); err != nil {
			return err
		}
	}

	result := report.ResultNormal
	if violated {
		result = report.ResultViolated
	}
	return s.repo.MarkResolved(ctx, id, &result)
}

func (s *Service) resolvePostReport(ctx context.Context, adminID string, rp *report.Report, violated bool, reason string) error {
	p, err := s.posts.FindByID(ctx, *rp.PostID)
	if err != nil {
		return fmt.Errorf("load post: %w", err)
	}
	if p == nil {
		return apperr.NotFound("Post not found")
	}
	if p.Deleted() {
		if err := s.repo.MarkResolved(ctx, rp.ID, nil); err != nil {
			return fmt.Errorf("mark resolved: %w", err)
		}
		return apperr.Forbidden("Post already deleted")
	}
	if !violated {
		return nil
	}

	if err := s.posts.SoftDelete(ctx, *rp.PostID, &reason); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if _, err := s.notifier.Execute(ctx, notifyuc.NotifyUserInput{
		InteractedID: adminID,
		NotifiedID:   p.UserID,
		Kind:         notify.KindReport,
		PostID:       &rp.ID,
	}); err != nil {
		s.log.Error("report resolution notification failed",
			zap.String("reportId", rp.ID), zap.Error(err))
	}
	return nil
}

func (s *Service) resolveProfileReport(ctx context.Context, accused *user.User, violated bool, reason string) error {
	if accused.Banned() {
		return apperr.Forbidden("Profile already banned")
	}
	if !violated {
		return nil
	}

	if err := s.users.Ban(ctx, accused.ID, reason); err != nil {
		return fmt.Errorf("ban user: %w", err)
	}

	s.pusher.Notify(accused.ID, realtime.BanEvent{Message: "Your account has been banned!"})

	if err := mailtask.Enqueue(ctx, s.queue, mailtask.SendMailTaskPayload{
		To:      accused.Email,
		Subject: "Your account has been banned",
		Body:    "Your account was marked violated and banned due to reason: " + reason,
	}); err != nil {
		s.log.Error("ban mail enqueue failed", zap.String("userId", accused.ID), zap.Error(err))
	}
	return nil
}
