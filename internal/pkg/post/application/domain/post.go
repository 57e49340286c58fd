package post

import (
	"regexp"
	"time"
)

// Post is one media post. Deletion is soft: a deleted post keeps its row with
// deleted_at set so moderation history stays intact.
type Post struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	MediaList    []string   `json:"mediaList"`
	Thumbnail    *string    `json:"thumbnail"`
	Caption      *string    `json:"caption"`
	Layout       int        `json:"layout"`
	Emotion      *string    `json:"emotion"`
	CreatedAt    time.Time  `json:"createdAt"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
	DeleteReason *string    `json:"-"`
}

func (p Post) Deleted() bool { return p.DeletedAt != nil }

// Author is the slice of the posting user shown in feeds.
type Author struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Ava      *string `json:"ava"`
}

// Reaction is a like entry as shown inside a feed item. Only the kind is
// exposed; who reacted stays private to the reactor.
type Reaction struct {
	React string `json:"react"`
}

// TaggedUser identifies a user tagged on a post.
type TaggedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// FeedItem is a post joined with everything the feed needs in one shot.
type FeedItem struct {
	ID        string       `json:"id"`
	MediaList []string     `json:"mediaList"`
	Caption   *string      `json:"caption"`
	Layout    int          `json:"layout"`
	Emotion   *string      `json:"emotion"`
	CreatedAt time.Time    `json:"createdAt"`
	User      Author       `json:"user"`
	Likes     []Reaction   `json:"likes"`
	Tags      []TaggedUser `json:"tags"`
	LikeCount int          `json:"likeCount"`
	Liked     bool         `json:"liked"`
}

// CommentView is a comment joined with its author, as shown on a post detail.
type CommentView struct {
	ID      string `json:"id"`
	User    Author `json:"user"`
	Comment string `json:"comment"`
}

// Detail is the full single-post view: post, author, like count and comments.
type Detail struct {
	ID           string        `json:"id"`
	User         Author        `json:"user"`
	Caption      *string       `json:"caption"`
	MediaList    []string      `json:"mediaList"`
	CreatedAt    time.Time     `json:"createdAt"`
	LikeCount    int           `json:"likeCount"`
	Comments     []CommentView `json:"comments"`
	DeletedAt    *time.Time    `json:"deletedAt,omitempty"`
	DeleteReason *string       `json:"deleteReason,omitempty"`
}

// Thumbnail is the grid entry on a profile page.
type Thumbnail struct {
	ID           string  `json:"id"`
	Thumbnail    *string `json:"thumbnail"`
	Multiple     bool    `json:"multiple"`
	ContainVideo bool    `json:"containVideo"`
}

var videoExtensions = regexp.MustCompile(`(?i)\.(mp4|mov|avi|wmv|flv)$`)

// IsVideoURL reports whether the media URL points at a video, judged by its
// file extension.
func IsVideoURL(url string) bool { return videoExtensions.MatchString(url) }
