package notify

import "time"

// Kind tags what a notification is about.
type Kind string

const (
	KindFollow  Kind = "FOLLOW"
	KindLike    Kind = "LIKE"
	KindComment Kind = "COMMENT"
	KindTag     Kind = "TAG"
	KindReport  Kind = "REPORT"
	KindPost    Kind = "POST"
)

// Message renders the human-readable notification text for the kind.
func (k Kind) Message() string {
	switch k {
	case KindFollow:
		return "started following you."
	case KindLike:
		return "liked your post"
	case KindComment:
		return "commented on your post"
	case KindTag:
		return "tagged you in a post"
	case KindPost:
		return "shared a new post"
	case KindReport:
		return "Your post was marked violated and deleted. Tell me if this was a mistake."
	default:
		return ""
	}
}

// Notification is the durable fact "interacted user produced an event of some
// kind for the notified user". It is written regardless of whether the target
// is connected, so history survives missed live pushes.
type Notification struct {
	ID           string
	InteractedID string
	NotifiedID   string
	Kind         Kind
	PostID       *string
	Read         bool
	CreatedAt    time.Time
}

// Interactor is the public slice of the acting user shown in listings.
type Interactor struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Ava      *string `json:"ava"`
}

// View is a notification joined with its interactor, ready for the client.
type View struct {
	ID         string     `json:"id"`
	Interacted Interactor `json:"interacted"`
	PostID     *string    `json:"postId"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	CreatedAt  time.Time  `json:"createdAt"`
	NotiType   Kind       `json:"notiType"`
}
