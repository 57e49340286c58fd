package user

import "time"

// AccountType separates regular users from moderation admins.
type AccountType string

const (
	AccountTypeUser  AccountType = "USER"
	AccountTypeAdmin AccountType = "ADMIN"
)

// User is the account identity referenced by every other context.
// PasswordHash never leaves the persistence/auth layers.
type User struct {
	ID                  string
	Email               string
	Username            string
	PasswordHash        string
	Name                *string
	Bio                 *string
	Ava                 *string
	AccountType         AccountType
	AccessFailedCount   int
	BanReason           *string
	UsernameLastChanged time.Time
	CreatedAt           time.Time
}

// Banned reports whether the account has been banned by moderation.
func (u *User) Banned() bool { return u.AccessFailedCount > 0 }

// IsAdmin reports whether the account holds moderation rights.
func (u *User) IsAdmin() bool { return u.AccountType == AccountTypeAdmin }

// Public is the projection safe to return to other users.
type Public struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     *string `json:"name"`
	Ava      *string `json:"ava"`
}

// PublicView strips everything not meant for other users.
func (u *User) PublicView() Public {
	return Public{ID: u.ID, Username: u.Username, Name: u.Name, Ava: u.Ava}
}
