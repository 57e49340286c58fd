package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	cacheport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/cache/port"
	qport "github.com/trang-ptt/INSTARE-BE/internal/infrastructure/queue/port"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/otp"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/password"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/token"
	mailtask "github.com/trang-ptt/INSTARE-BE/internal/pkg/mail/application/task"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
)

// memCache is an in-process stand-in for the Redis cache.
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close() error               { return nil }

// fakeQueue records enqueued tasks instead of dispatching them.
type fakeQueue struct {
	tasks []qport.Task
	opts  []qport.EnqueueOption
}

func (q *fakeQueue) Enqueue(_ context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	q.tasks = append(q.tasks, t)
	q.opts = append(q.opts, opts...)
	return fmt.Sprintf("task-%d", len(q.tasks)), nil
}

func (q *fakeQueue) Close() error { return nil }

func (q *fakeQueue) lastMail(t *testing.T) mailtask.SendMailTaskPayload {
	t.Helper()
	require.NotEmpty(t, q.tasks)
	last := q.tasks[len(q.tasks)-1]
	require.Equal(t, mailtask.SendMailTaskType, last.Type)
	var p mailtask.SendMailTaskPayload
	require.NoError(t, json.Unmarshal(last.Payload, &p))
	return p
}

// fakeUserRepo is an in-memory account store.
type fakeUserRepo struct {
	users  []*user.User
	nextID int
}

func (f *fakeUserRepo) Create(_ context.Context, email, username, passwordHash string) (*user.User, error) {
	f.nextID++
	u := &user.User{
		ID:           fmt.Sprintf("user-%d", f.nextID),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		AccountType:  user.AccountTypeUser,
		CreatedAt:    time.Now(),
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfile(context.Context, string, *string, *string) error {
	panic("not used")
}
func (f *fakeUserRepo) UpdateUsername(context.Context, string, string) error { panic("not used") }
func (f *fakeUserRepo) UpdateAvatar(context.Context, string, *string) error  { panic("not used") }
func (f *fakeUserRepo) Ban(context.Context, string, string) error            { panic("not used") }
func (f *fakeUserRepo) Search(context.Context, string, int) ([]user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) Admins(context.Context) ([]user.User, error) { panic("not used") }
func (f *fakeUserRepo) Counts(context.Context, string) (int, int, int, error) {
	panic("not used")
}

type fixture struct {
	svc   *service.Service
	users *fakeUserRepo
	otps  *otp.Store
	queue *fakeQueue
	token *token.Service
}

func newFixture() *fixture {
	users := &fakeUserRepo{}
	otps := otp.NewStore(newMemCache())
	queue := &fakeQueue{}
	tokens := token.NewService("test-secret")
	return &fixture{
		svc:   service.NewService(users, otps, queue, tokens),
		users: users,
		otps:  otps,
		queue: queue,
		token: tokens,
	}
}

func (f *fixture) pendingCode(t *testing.T, email string) int {
	t.Helper()
	p, err := f.otps.Get(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Code
}

func TestVerifyEmailForSignUpMailsCode(t *testing.T) {
	f := newFixture()

	sent, err := f.svc.VerifyEmailForSignUp(context.Background(), "new@example.com", "newbie", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", sent)

	p, err := f.otps.Get(context.Background(), "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "newbie", p.Username)
	assert.True(t, password.Matches(p.PasswordHash, "secret123"))
	assert.GreaterOrEqual(t, p.Code, 100000)
	assert.LessOrEqual(t, p.Code, 999999)

	mail := f.queue.lastMail(t)
	assert.Equal(t, "new@example.com", mail.To)
	assert.Equal(t, "Verification code from InStare", mail.Subject)
	assert.Contains(t, mail.Body, fmt.Sprintf("%d", p.Code))

	// Mail rides the dedicated queue with aggressive retries.
	require.NotEmpty(t, f.queue.opts)
	assert.Equal(t, "mail", f.queue.opts[0].Queue)
}

func TestVerifyEmailForSignUpRejections(t *testing.T) {
	f := newFixture()
	_, err := f.users.Create(context.Background(), "taken@example.com", "taken", "hash")
	require.NoError(t, err)

	cases := []struct {
		name     string
		email    string
		username string
		password string
		want     string
	}{
		{"invalid email", "not-an-email", "newbie", "secret123", "invalid email address"},
		{"email taken", "taken@example.com", "newbie", "secret123", "Credential taken"},
		{"short password", "new@example.com", "newbie", "12345", "Password must be more than 6 characters!"},
		{"bad username", "new@example.com", "has space", "secret123", "Username can only contain letters, numbers, dashes, underscores and periods"},
		{"username taken", "new@example.com", "taken", "secret123", "This username was taken"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.VerifyEmailForSignUp(context.Background(), tc.email, tc.username, tc.password)
			require.Error(t, err)
			assert.True(t, apperr.IsForbidden(err))
			assert.EqualError(t, err, tc.want)
		})
	}
	assert.Empty(t, f.queue.tasks)
}

func TestSignUpAfterVerifyCreatesAccount(t *testing.T) {
	f := newFixture()
	_, err := f.svc.VerifyEmailForSignUp(context.Background(), "new@example.com", "newbie", "secret123")
	require.NoError(t, err)
	code := f.pendingCode(t, "new@example.com")

	signed, err := f.svc.SignUpAfterVerify(context.Background(), "new@example.com", code)
	require.NoError(t, err)

	claims, err := f.token.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", claims.Email)

	u, err := f.users.FindByUsername(context.Background(), "newbie")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, claims.UserID, u.ID)
	assert.True(t, password.Matches(u.PasswordHash, "secret123"))

	// The code is single-use.
	p, err := f.otps.Get(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSignUpAfterVerifyWrongCode(t *testing.T) {
	f := newFixture()
	_, err := f.svc.VerifyEmailForSignUp(context.Background(), "new@example.com", "newbie", "secret123")
	require.NoError(t, err)
	code := f.pendingCode(t, "new@example.com")

	_, err = f.svc.SignUpAfterVerify(context.Background(), "new@example.com", code+1)
	assert.EqualError(t, err, "OTP's incorrect or email's invalid")
	assert.Empty(t, f.users.users)
}

func TestSignUpAfterVerifyRejectsResetCode(t *testing.T) {
	f := newFixture()

	// A password-reset code carries no pending credentials and cannot mint
	// an account.
	require.NoError(t, f.otps.Put(context.Background(), otp.Pending{Email: "new@example.com", Code: 123456}))

	_, err := f.svc.SignUpAfterVerify(context.Background(), "new@example.com", 123456)
	assert.EqualError(t, err, "OTP's incorrect or email's invalid")
}

func signedUpFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture()
	hash, err := password.Hash("secret123")
	require.NoError(t, err)
	_, err = f.users.Create(context.Background(), "user@example.com", "someone", hash)
	require.NoError(t, err)
	return f
}

func TestSignInByEmailAndUsername(t *testing.T) {
	f := signedUpFixture(t)

	for _, login := range []string{"user@example.com", "someone"} {
		signed, err := f.svc.SignIn(context.Background(), login, "secret123")
		require.NoError(t, err, login)
		claims, err := f.token.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", claims.Email)
	}
}

func TestSignInRejections(t *testing.T) {
	f := signedUpFixture(t)

	_, err := f.svc.SignIn(context.Background(), "ghost@example.com", "secret123")
	assert.EqualError(t, err, "user's not exist")

	_, err = f.svc.SignIn(context.Background(), "someone", "wrong-pass")
	assert.EqualError(t, err, "Password incorrect")

	f.users.users[0].AccessFailedCount = 1
	_, err = f.svc.SignIn(context.Background(), "user@example.com", "secret123")
	assert.EqualError(t, err, "user's BANNED")
}

func TestForgotPasswordFlow(t *testing.T) {
	f := signedUpFixture(t)

	sent, err := f.svc.VerifyEmailForgotPassword(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", sent)
	assert.Equal(t, "Reset password verification code from InStare", f.queue.lastMail(t).Subject)

	code := f.pendingCode(t, "user@example.com")

	assert.EqualError(t,
		f.svc.CheckOTPForgotPassword(context.Background(), "user@example.com", code+1),
		"OTP incorrect")

	// Checking does not consume the code.
	require.NoError(t, f.svc.CheckOTPForgotPassword(context.Background(), "user@example.com", code))
	require.NoError(t, f.svc.CheckOTPForgotPassword(context.Background(), "user@example.com", code))

	require.NoError(t, f.svc.NewPasswordAfterVerify(context.Background(), "user@example.com", "fresh-pass"))
	assert.True(t, password.Matches(f.users.users[0].PasswordHash, "fresh-pass"))

	// The reset code is gone once the password changed.
	p, err := f.otps.Get(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.VerifyEmailForgotPassword(context.Background(), "ghost@example.com")
	assert.EqualError(t, err, "Email doesn't exist in our system")
}

func TestNewPasswordRejectsShortPassword(t *testing.T) {
	f := signedUpFixture(t)

	err := f.svc.NewPasswordAfterVerify(context.Background(), "user@example.com", "12345")
	assert.EqualError(t, err, "Password must be more than 6 characters!")
}
