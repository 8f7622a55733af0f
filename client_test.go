package instagood

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc func(ctx context.Context, req *Request) (*Response, error)

// fakeTransport records every request and answers through handler.
type fakeTransport struct {
	mu       sync.Mutex
	requests []*Request
	handler  handlerFunc
}

func (f *fakeTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.handler == nil {
		return nil, errors.New("no handler")
	}
	return f.handler(ctx, req)
}

func (f *fakeTransport) calls() []*Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Request(nil), f.requests...)
}

func jsonResp(status int, body string) *Response {
	return &Response{Status: status, Headers: map[string]string{}, Body: []byte(body)}
}

func newTestClient(t *testing.T, cfg ClientConfig, h handlerFunc) (*Client, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{handler: h}
	cfg.Transport = ft
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.Backoff = stealth.BackoffConfig{InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond, Multiplier: 2}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c, ft
}

func authedConfig() ClientConfig {
	return ClientConfig{Username: "alice", CSRFToken: "tok123", SessionID: "sess456"}
}

func TestNewClient_HeaderTemplate(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), nil)

	h := c.Headers()
	assert.Contains(t, h["cookie"], "csrftoken=tok123")
	assert.Contains(t, h["cookie"], "sessionid=sess456")
	assert.Contains(t, h["cookie"], "rur=FTW")
	assert.NotContains(t, h["cookie"], "__")
	assert.Equal(t, "tok123", h["x-csrftoken"])
	assert.Equal(t, "1", h["x-instagram-ajax"])
	assert.Equal(t, "XMLHttpRequest", h["x-requested-with"])
	assert.Equal(t, "en-US", h["accept-language"])
	assert.Equal(t, DefaultBaseURL+"/", h["referer"])
	assert.NotEmpty(t, h["user-agent"])

	assert.Empty(t, ft.calls(), "construction must not touch the network")
}

func TestNewClient_ReadOnlyHasNoSessionHeaders(t *testing.T) {
	c, _ := newTestClient(t, ClientConfig{Username: "alice"}, nil)

	h := c.Headers()
	assert.NotContains(t, h, "cookie")
	assert.NotContains(t, h, "x-csrftoken")
	assert.False(t, c.Authenticated())
}

func TestNew_AppliesOptions(t *testing.T) {
	ft := &fakeTransport{}
	c, err := New("alice", "tok", "sess",
		WithTransport(ft),
		WithBaseURL("https://example.test/"),
		WithTimeout(time.Second),
		WithRetries(5),
		WithPassword("pw", "secret"),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	assert.True(t, c.Authenticated())
	assert.Equal(t, "https://example.test/", c.Headers()["referer"])
	assert.Equal(t, time.Second, c.cfg.RequestTimeout)
	assert.Equal(t, 5, c.cfg.MaxRetries)

	user, pass, secret := c.Account().loginSecrets()
	assert.Equal(t, "alice", user)
	assert.Equal(t, "pw", pass)
	assert.Equal(t, "secret", secret)
}

func TestSetters_Chain(t *testing.T) {
	c, _ := newTestClient(t, ClientConfig{}, nil)

	c.SetUsername("bob").SetCSRFToken("a").SetSessionID("b")

	creds := c.Credentials()
	assert.Equal(t, "bob", creds.Username)
	assert.Equal(t, "a", creds.CSRFToken)
	assert.Equal(t, "b", creds.SessionID)
	assert.True(t, c.Authenticated())

	c.SetCredentials("", "")
	assert.False(t, c.Authenticated())
}

func TestSetters_NextRequestUsesNewCredentials(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), func(_ context.Context, req *Request) (*Response, error) {
		return jsonResp(200, `{"result":"following","status":"ok"}`), nil
	})

	_, err := c.Follow(context.Background(), "123")
	require.NoError(t, err)

	c.SetCSRFToken("rotated")
	_, err = c.Follow(context.Background(), "123")
	require.NoError(t, err)

	calls := ft.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "tok123", calls[0].Headers["x-csrftoken"])
	assert.Equal(t, "rotated", calls[1].Headers["x-csrftoken"])
	assert.Contains(t, calls[1].Headers["cookie"], "csrftoken=rotated")
	assert.False(t, strings.Contains(calls[1].Headers["cookie"], "tok123"))
}

func TestWriteActions_RequireAuth(t *testing.T) {
	ctx := context.Background()
	actions := map[string]func(c *Client) error{
		"follow":   func(c *Client) error { _, err := c.Follow(ctx, "bob"); return err },
		"unfollow": func(c *Client) error { _, err := c.Unfollow(ctx, "bob"); return err },
		"like":     func(c *Client) error { _, err := c.Like(ctx, "1973268968068413381"); return err },
		"unlike":   func(c *Client) error { _, err := c.Unlike(ctx, "1973268968068413381"); return err },
		"comment":  func(c *Client) error { _, err := c.PostComment(ctx, "1973450160415933226", "I liked!"); return err },
		"logout":   func(c *Client) error { return c.Logout(ctx) },
	}

	for name, action := range actions {
		t.Run(name, func(t *testing.T) {
			c, ft := newTestClient(t, ClientConfig{Username: "alice"}, func(context.Context, *Request) (*Response, error) {
				return jsonResp(200, `{"status":"ok"}`), nil
			})

			err := action(c)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAuthRequired)
			assert.Equal(t, KindAuthRequired, KindOf(err))
			assert.Empty(t, ft.calls())
		})
	}
}

func TestWriteActions_HalfSessionIsNotEnough(t *testing.T) {
	c, ft := newTestClient(t, ClientConfig{Username: "alice", CSRFToken: "tok"}, nil)

	_, err := c.Like(context.Background(), "1")
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Empty(t, ft.calls())
}
