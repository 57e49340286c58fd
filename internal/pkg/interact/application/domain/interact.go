package interact

import "time"

// Reaction is the kind of a like. Unknown input collapses to LOVE, the
// double-tap default.
type Reaction string

const (
	ReactionLove  Reaction = "LOVE"
	ReactionLike  Reaction = "LIKE"
	ReactionLaugh Reaction = "LAUGH"
	ReactionSad   Reaction = "SAD"
	ReactionAngry Reaction = "ANGRY"
)

// ParseReaction maps client input onto a known reaction kind.
func ParseReaction(s string) Reaction {
	switch Reaction(s) {
	case ReactionLike, ReactionLaugh, ReactionSad, ReactionAngry:
		return Reaction(s)
	default:
		return ReactionLove
	}
}

// Like is one user's reaction on one post; the pair is unique, re-reacting
// changes the kind in place.
type Like struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	React     Reaction  `json:"react"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Follow records that follower follows following.
type Follow struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"followerId"`
	FollowingID string    `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}
