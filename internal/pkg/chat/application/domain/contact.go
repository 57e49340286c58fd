package chat

import (
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
)

// Contact is one entry of the conversation list: the counterpart user and the
// most recent message exchanged, nil when the pair has never talked.
type Contact struct {
	User    user.Public `json:"user"`
	Message *Message    `json:"message"`
}
