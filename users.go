package instagood

import (
	"context"
	"fmt"
	"log/slog"
)

// Direction selects the follower or following edge list.
type Direction string

const (
	Followers Direction = "followers"
	Following Direction = "following"
)

func (d Direction) edgeName() string {
	if d == Following {
		return "edge_follow"
	}
	return "edge_followed_by"
}

func (d Direction) queryHash() string {
	if d == Following {
		return queryHashFollowing
	}
	return queryHashFollowers
}

func (d Direction) valid() bool {
	return d == Followers || d == Following
}

// FetchUserInfo looks a username up through the user search endpoint and
// returns the first match. An empty result set is ErrUserNotFound.
func (c *Client) FetchUserInfo(ctx context.Context, username string) (*User, error) {
	const op = "FetchUserInfo"
	if username == "" {
		username = c.account.Credentials().Username
	}

	resp, err := c.doGET(ctx, op, c.ep.topSearch(username))
	if err != nil {
		return nil, err
	}
	user, err := parseTopSearch(op, resp)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &Error{Kind: KindUserNotFound, Op: op, Status: resp.Status, Message: fmt.Sprintf("no user matches %q", username)}
	}
	return user, nil
}

// ResolveUserID returns userOrID unchanged when it is already numeric,
// otherwise the pk of the matching user. Results are not cached.
func (c *Client) ResolveUserID(ctx context.Context, userOrID string) (string, error) {
	if IsNumericID(userOrID) {
		return userOrID, nil
	}
	user, err := c.FetchUserInfo(ctx, userOrID)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", userOrID, err)
	}
	c.log.Debug("resolved user id", slog.String("username", userOrID), slog.String("id", user.PK))
	return user.PK, nil
}

// FetchUserFollowers returns the first page of user's followers.
func (c *Client) FetchUserFollowers(ctx context.Context, user string, pageSize int) (*Friendships, error) {
	return c.FetchFriendships(ctx, Followers, user, pageSize, "")
}

// FetchUserFollowing returns the first page of accounts user follows.
func (c *Client) FetchUserFollowing(ctx context.Context, user string, pageSize int) (*Friendships, error) {
	return c.FetchFriendships(ctx, Following, user, pageSize, "")
}

// FetchFriendships returns one page of an edge list. Pass the previous
// page's EndCursor as cursor to continue.
func (c *Client) FetchFriendships(ctx context.Context, direction Direction, user string, pageSize int, cursor string) (*Friendships, error) {
	const op = "FetchFriendships"
	if !direction.valid() {
		return nil, &Error{Kind: KindRejected, Op: op, Err: fmt.Errorf("unknown direction %q", direction)}
	}

	id, err := c.ResolveUserID(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	variables := map[string]any{
		"id":           id,
		"include_reel": true,
		"fetch_mutual": true,
		"first":        pageSize,
	}
	if cursor != "" {
		variables["after"] = cursor
	}
	url, err := c.ep.graphQL(direction.queryHash(), variables)
	if err != nil {
		return nil, &Error{Kind: KindRejected, Op: op, Err: err}
	}

	resp, err := c.doGET(ctx, op, url)
	if err != nil {
		return nil, err
	}
	return parseFriendships(op, resp, direction, id)
}

// FetchUserPosts returns postCount timeline posts of user starting at the
// fixed default cursor.
func (c *Client) FetchUserPosts(ctx context.Context, user string, postCount int) (*Posts, error) {
	return c.FetchUserPostsAfter(ctx, user, postCount, defaultPostsCursor)
}

// FetchUserPostsAfter returns postCount timeline posts of user after cursor.
// An empty cursor starts at the newest post.
func (c *Client) FetchUserPostsAfter(ctx context.Context, user string, postCount int, cursor string) (*Posts, error) {
	const op = "FetchUserPosts"

	id, err := c.ResolveUserID(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	variables := map[string]any{
		"id":    id,
		"first": postCount,
	}
	if cursor != "" {
		variables["after"] = cursor
	}
	url, err := c.ep.graphQL(queryHashTimelineMedia, variables)
	if err != nil {
		return nil, &Error{Kind: KindRejected, Op: op, Err: err}
	}

	resp, err := c.doGET(ctx, op, url)
	if err != nil {
		return nil, err
	}
	return parseTimelineMedia(op, resp, id)
}
