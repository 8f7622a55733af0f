package instagood

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_ResolvesUsername(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), func(_ context.Context, req *Request) (*Response, error) {
		if strings.Contains(req.URL, pathTopSearch) {
			return jsonResp(200, aliceSearch), nil
		}
		return jsonResp(200, `{"result":"following","status":"ok"}`), nil
	})

	res, err := c.Follow(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &FriendshipResult{Status: StatusOK, ID: "123", Action: ActionFollow, Result: "following"}, res)

	calls := ft.calls()
	require.Len(t, calls, 2)
	post := calls[1]
	assert.Equal(t, "POST", post.Method)
	assert.Equal(t, DefaultBaseURL+"/web/friendships/123/follow/", post.URL)
	assert.Equal(t, "tok123", post.Headers["x-csrftoken"])
	assert.Contains(t, post.Headers["cookie"], "sessionid=sess456")
}

func TestUnfollow_NumericID(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), func(context.Context, *Request) (*Response, error) {
		return jsonResp(200, `{"status":"ok"}`), nil
	})

	res, err := c.Unfollow(context.Background(), "257938510")
	require.NoError(t, err)
	assert.Equal(t, "257938510", res.ID)
	assert.Equal(t, ActionUnfollow, res.Action)

	calls := ft.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, DefaultBaseURL+"/web/friendships/257938510/unfollow/", calls[0].URL)
}

func TestFollow_Rejected(t *testing.T) {
	c, _ := newTestClient(t, authedConfig(), func(context.Context, *Request) (*Response, error) {
		return jsonResp(400, `{"message":"feedback_required","spam":true,"status":"fail"}`), nil
	})

	res, err := c.Follow(context.Background(), "123")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestFollow_ResolutionFailure(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), routeSearch(`{"status":"ok","users":[]}`))

	_, err := c.Follow(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Len(t, ft.calls(), 1, "no mutation after a failed lookup")
}

func TestPerformFriendshipAction_UnknownAction(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), nil)

	_, err := c.PerformFriendshipAction(context.Background(), FriendshipAction("block"), "123")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Empty(t, ft.calls())
}

func TestLikeAndUnlike(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), func(context.Context, *Request) (*Response, error) {
		return jsonResp(200, `{"status":"ok"}`), nil
	})

	liked, err := c.Like(context.Background(), "1973268968068413381")
	require.NoError(t, err)
	assert.Equal(t, &LikeResult{Status: StatusOK, MediaID: "1973268968068413381", Action: ActionLike}, liked)

	unliked, err := c.Unlike(context.Background(), "1973268968068413381")
	require.NoError(t, err)
	assert.Equal(t, ActionUnlike, unliked.Action)

	calls := ft.calls()
	require.Len(t, calls, 2, "media ids are never resolved")
	assert.Equal(t, DefaultBaseURL+"/web/media/1973268968068413381/like/", calls[0].URL)
	assert.Equal(t, DefaultBaseURL+"/web/media/1973268968068413381/unlike/", calls[1].URL)
}

func TestPerformLikeAction_UnknownAction(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), nil)

	_, err := c.PerformLikeAction(context.Background(), LikeAction("love"), "1")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Empty(t, ft.calls())
}

func TestPostComment(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), func(context.Context, *Request) (*Response, error) {
		return jsonResp(200, `{"id":"17900000000000001","from":{"id":123,"username":"alice"},"text":"I liked! & more","created_time":1546300800,"status":"ok"}`), nil
	})

	comment, err := c.PostComment(context.Background(), "1973450160415933226", "I liked! & more")
	require.NoError(t, err)
	assert.Equal(t, "17900000000000001", comment.ID)
	assert.Equal(t, "1973450160415933226", comment.MediaID)
	assert.Equal(t, "123", comment.FromID)
	assert.Equal(t, "alice", comment.FromUsername)
	assert.Equal(t, "I liked! & more", comment.Text)
	assert.Equal(t, int64(1546300800), comment.CreatedAt.Unix())

	calls := ft.calls()
	require.Len(t, calls, 1)
	post := calls[0]
	assert.Equal(t, DefaultBaseURL+"/web/media/1973450160415933226/add/", post.URL)
	assert.Equal(t, contentTypeForm, post.Headers["content-type"])

	form, err := url.ParseQuery(string(post.Body))
	require.NoError(t, err)
	assert.Equal(t, "I liked! & more", form.Get("comment_text"))
	assert.Contains(t, form, "replied_to_comment_id")
	assert.Equal(t, "", form.Get("replied_to_comment_id"))
}

func TestPostComment_Malformed(t *testing.T) {
	c, _ := newTestClient(t, authedConfig(), func(context.Context, *Request) (*Response, error) {
		return jsonResp(200, `<!DOCTYPE html>`), nil
	})

	_, err := c.PostComment(context.Background(), "1", "hi")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
