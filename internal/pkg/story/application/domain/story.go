package story

import "time"

// Lifetime is how long a story stays visible after creation.
const Lifetime = 24 * time.Hour

// Story is one 24h-expiring media item. Expired stories keep their rows; reads
// filter on expired_at.
type Story struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Media     string    `json:"media"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiredAt time.Time `json:"expiredAt"`
}

// Owner is the story author slice shown in listings.
type Owner struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Ava      *string `json:"ava"`
}

// Box is one entry in the story tray: an author with live stories and whether
// the viewer has seen all of them.
type Box struct {
	Owner
	Read bool `json:"read"`
}

// View is a story joined with its owner.
type View struct {
	ID        string    `json:"id"`
	User      Owner     `json:"user"`
	Media     string    `json:"media"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiredAt time.Time `json:"expiredAt"`
}

// Read records that a user viewed a story.
type Read struct {
	ID      string    `json:"id"`
	StoryID string    `json:"storyId"`
	UserID  string    `json:"userId"`
	ReadAt  time.Time `json:"readAt"`
}
