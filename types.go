package instagood

import "time"

// StatusOK is the status every successful platform response carries.
const StatusOK = "ok"

// User is a profile as returned by the user search endpoint.
type User struct {
	Status        string
	PK            string
	Username      string
	FullName      string
	ProfilePicURL string
	IsPrivate     bool
	IsVerified    bool
	FollowerCount int
}

// EdgeUser is the node wrapped by a follower/following edge.
type EdgeUser struct {
	ID                string
	Username          string
	FullName          string
	ProfilePicURL     string
	IsPrivate         bool
	IsVerified        bool
	FollowedByViewer  bool
	RequestedByViewer bool
}

// PageInfo is the pagination cursor of an edge list. EndCursor is nil when
// the platform reports null.
type PageInfo struct {
	HasNextPage bool
	EndCursor   *string
}

// Friendships is one page of a follower or following edge list.
type Friendships struct {
	Status    string
	Direction Direction
	UserID    string
	Count     int
	PageInfo  PageInfo
	Edges     []EdgeUser
}

// Post is one node of a user's timeline media.
type Post struct {
	ID           string
	Shortcode    string
	DisplayURL   string
	Caption      string
	IsVideo      bool
	LikeCount    int
	CommentCount int
	TakenAt      time.Time
}

// Posts is one page of a user's timeline media.
type Posts struct {
	Status   string
	UserID   string
	Count    int
	PageInfo PageInfo
	Edges    []Post
}

// FriendshipResult is the outcome of a follow or unfollow.
type FriendshipResult struct {
	Status string
	ID     string
	Action FriendshipAction
	// Result is "following" or "requested" for follows, empty for unfollows.
	Result string
}

// LikeResult is the outcome of a like or unlike.
type LikeResult struct {
	Status  string
	MediaID string
	Action  LikeAction
}

// Comment is a comment created by PostComment.
type Comment struct {
	Status       string
	ID           string
	MediaID      string
	Text         string
	FromID       string
	FromUsername string
	CreatedAt    time.Time
}

// LoginResult is the outcome of a password login.
type LoginResult struct {
	Status        string
	Authenticated bool
	UserID        string
	TwoFactor     bool
}
