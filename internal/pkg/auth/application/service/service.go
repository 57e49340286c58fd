package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	qport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/queue/port"
	mailtask "github.com/trang-ptt/INSTARE-BE/internal/pkg/mail/application/task"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/otp"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/password"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/token"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)
)

// Service implements the email-OTP signup, sign-in and password reset flows.
type Service struct {
	users  userrepo.UserRepository
	otps   *otp.Store
	queue  qport.Client
	tokens *token.Service
}

func NewService(users userrepo.UserRepository, otps *otp.Store, queue qport.Client, tokens *token.Service) *Service {
	return &Service{users: users, otps: otps, queue: queue, tokens: tokens}
}

// VerifyEmailForSignUp validates the requested credentials, stores the pending
// signup and mails a verification code. Returns the email the code was sent to.
func (s *Service) VerifyEmailForSignUp(ctx context.Context, email, username, plainPassword string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", apperr.Forbidden("invalid email address")
	}
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return "", err
	} else if existing != nil {
		return "", apperr.Forbidden("Credential taken")
	}
	if len(plainPassword) < 6 {
		return "", apperr.Forbidden("Password must be more than 6 characters!")
	}
	if !usernamePattern.MatchString(username) {
		return "", apperr.Forbidden("Username can only contain letters, numbers, dashes, underscores and periods")
	}
	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return "", err
	} else if existing != nil {
		return "", apperr.Forbidden("This username was taken")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return "", err
	}
	code := otp.GenerateCode()
	if err := s.otps.Put(ctx, otp.Pending{Email: email, Username: username, PasswordHash: hash, Code: code}); err != nil {
		return "", err
	}
	if err := mailtask.Enqueue(ctx, s.queue, mailtask.SendMailTaskPayload{
		To:      email,
		Subject: "Verification code from InStare",
		Body:    fmt.Sprintf("Please enter your verification code: %d", code),
	}); err != nil {
		return "", err
	}
	return email, nil
}

// SignUpAfterVerify checks the mailed code, creates the account and signs a token.
func (s *Service) SignUpAfterVerify(ctx context.Context, email string, code int) (string, error) {
	pending, err := s.otps.Get(ctx, email)
	if err != nil {
		return "", err
	}
	if pending == nil || pending.Code != code || pending.Username == "" {
		return "", apperr.Forbidden("OTP's incorrect or email's invalid")
	}
	u, err := s.users.Create(ctx, pending.Email, pending.Username, pending.PasswordHash)
	if err != nil {
		return "", err
	}
	_ = s.otps.Delete(ctx, email)
	return s.tokens.Sign(u.ID, u.Email)
}

// SignIn authenticates by email or username and returns a bearer token.
func (s *Service) SignIn(ctx context.Context, emailOrUsername, plainPassword string) (string, error) {
	var err error
	u, err := s.users.FindByEmail(ctx, emailOrUsername)
	if err != nil {
		return "", err
	}
	if u == nil && !emailPattern.MatchString(emailOrUsername) {
		if u, err = s.users.FindByUsername(ctx, emailOrUsername); err != nil {
			return "", err
		}
	}
	if u == nil {
		return "", apperr.Forbidden("user's not exist")
	}
	if u.Banned() {
		return "", apperr.Forbidden("user's BANNED")
	}
	if !password.Matches(u.PasswordHash, plainPassword) {
		return "", apperr.Forbidden("Password incorrect")
	}
	return s.tokens.Sign(u.ID, u.Email)
}

// VerifyEmailForgotPassword mails a reset code to an existing account.
func (s *Service) VerifyEmailForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", apperr.Forbidden("Email doesn't exist in our system")
	}
	code := otp.GenerateCode()
	if err := s.otps.Put(ctx, otp.Pending{Email: email, Code: code}); err != nil {
		return "", err
	}
	if err := mailtask.Enqueue(ctx, s.queue, mailtask.SendMailTaskPayload{
		To:      email,
		Subject: "Reset password verification code from InStare",
		Body:    fmt.Sprintf("Please enter your verification code: %d", code),
	}); err != nil {
		return "", err
	}
	return email, nil
}

// CheckOTPForgotPassword verifies a reset code without consuming it.
func (s *Service) CheckOTPForgotPassword(ctx context.Context, email string, code int) error {
	pending, err := s.otps.Get(ctx, email)
	if err != nil {
		return err
	}
	if pending == nil || pending.Code != code {
		return apperr.Forbidden("OTP incorrect")
	}
	return nil
}

// NewPasswordAfterVerify replaces the password of an existing account.
func (s *Service) NewPasswordAfterVerify(ctx context.Context, email, newPassword string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("user not found")
	}
	if len(newPassword) < 6 {
		return apperr.Forbidden("Password must be more than 6 characters!")
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	_ = s.otps.Delete(ctx, email)
	return nil
}
