package instagood

import (
	"context"
	"fmt"
	"net/url"
)

// FriendshipAction is a follow-graph mutation.
type FriendshipAction string

const (
	ActionFollow   FriendshipAction = "follow"
	ActionUnfollow FriendshipAction = "unfollow"
)

// LikeAction is a media like mutation.
type LikeAction string

const (
	ActionLike   LikeAction = "like"
	ActionUnlike LikeAction = "unlike"
)

// Follow follows user, given as a username or numeric id.
func (c *Client) Follow(ctx context.Context, user string) (*FriendshipResult, error) {
	return c.PerformFriendshipAction(ctx, ActionFollow, user)
}

// Unfollow unfollows user, given as a username or numeric id.
func (c *Client) Unfollow(ctx context.Context, user string) (*FriendshipResult, error) {
	return c.PerformFriendshipAction(ctx, ActionUnfollow, user)
}

// PerformFriendshipAction follows or unfollows user. It requires a session
// and fails before any network call without one.
func (c *Client) PerformFriendshipAction(ctx context.Context, action FriendshipAction, user string) (*FriendshipResult, error) {
	op := "FriendshipAction(" + string(action) + ")"
	if _, err := c.requireAuth(op); err != nil {
		return nil, err
	}
	if action != ActionFollow && action != ActionUnfollow {
		return nil, &Error{Kind: KindRejected, Op: op, Err: fmt.Errorf("unknown action %q", action)}
	}

	id, err := c.ResolveUserID(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.doPOST(ctx, op, c.ep.friendships(id, action), "", nil)
	if err != nil {
		return nil, err
	}
	return parseFriendshipAction(op, resp, id, action)
}

// Like likes the media with mediaID.
func (c *Client) Like(ctx context.Context, mediaID string) (*LikeResult, error) {
	return c.PerformLikeAction(ctx, ActionLike, mediaID)
}

// Unlike removes a like from the media with mediaID.
func (c *Client) Unlike(ctx context.Context, mediaID string) (*LikeResult, error) {
	return c.PerformLikeAction(ctx, ActionUnlike, mediaID)
}

// PerformLikeAction likes or unlikes a media. Media ids are never resolved.
func (c *Client) PerformLikeAction(ctx context.Context, action LikeAction, mediaID string) (*LikeResult, error) {
	op := "LikeAction(" + string(action) + ")"
	if _, err := c.requireAuth(op); err != nil {
		return nil, err
	}
	if action != ActionLike && action != ActionUnlike {
		return nil, &Error{Kind: KindRejected, Op: op, Err: fmt.Errorf("unknown action %q", action)}
	}

	resp, err := c.doPOST(ctx, op, c.ep.likes(mediaID, action), "", nil)
	if err != nil {
		return nil, err
	}
	return parseLikeAction(op, resp, mediaID, action)
}

// PostComment adds a top-level comment to the media with mediaID.
func (c *Client) PostComment(ctx context.Context, mediaID, message string) (*Comment, error) {
	const op = "PostComment"
	if _, err := c.requireAuth(op); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("comment_text", message)
	form.Set("replied_to_comment_id", "")

	resp, err := c.doPOST(ctx, op, c.ep.comment(mediaID), contentTypeForm, []byte(form.Encode()))
	if err != nil {
		return nil, err
	}
	return parseComment(op, resp, mediaID)
}
