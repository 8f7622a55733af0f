package instagood

import (
	"context"
	"fmt"
	"log/slog"
)

// Reader is the read-only capability set. It works without a session.
type Reader interface {
	ResolveUserID(ctx context.Context, userOrID string) (string, error)
	FetchUserInfo(ctx context.Context, username string) (*User, error)
	FetchUserFollowers(ctx context.Context, user string, pageSize int) (*Friendships, error)
	FetchUserFollowing(ctx context.Context, user string, pageSize int) (*Friendships, error)
	FetchFriendships(ctx context.Context, direction Direction, user string, pageSize int, cursor string) (*Friendships, error)
	FetchUserPosts(ctx context.Context, user string, postCount int) (*Posts, error)
	FetchUserPostsAfter(ctx context.Context, user string, postCount int, cursor string) (*Posts, error)
}

// Actor adds the write actions and session management, which need an
// authenticated session.
type Actor interface {
	Reader
	Login(ctx context.Context) (*LoginResult, error)
	Logout(ctx context.Context) error
	Follow(ctx context.Context, user string) (*FriendshipResult, error)
	Unfollow(ctx context.Context, user string) (*FriendshipResult, error)
	PerformFriendshipAction(ctx context.Context, action FriendshipAction, user string) (*FriendshipResult, error)
	Like(ctx context.Context, mediaID string) (*LikeResult, error)
	Unlike(ctx context.Context, mediaID string) (*LikeResult, error)
	PerformLikeAction(ctx context.Context, action LikeAction, mediaID string) (*LikeResult, error)
	PostComment(ctx context.Context, mediaID, message string) (*Comment, error)
}

var (
	_ Reader = (*Client)(nil)
	_ Actor  = (*Client)(nil)
)

// Client is a web-endpoint client bound to one account.
type Client struct {
	transport Transport
	account   *Account
	ep        endpoints
	cfg       ClientConfig
	log       *slog.Logger
}

// NewClient creates a client from cfg. No network I/O happens here.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	if cfg.Transport == nil {
		t, err := NewStealthTransport(cfg.Proxy)
		if err != nil {
			return nil, err
		}
		cfg.Transport = t
	}

	c := &Client{
		transport: cfg.Transport,
		account:   newAccount(cfg),
		ep:        newEndpoints(cfg.BaseURL),
		cfg:       cfg,
		log:       cfg.Logger,
	}
	c.log.Debug("client created",
		slog.String("user", cfg.Username),
		slog.Bool("authenticated", c.account.Authenticated()))
	return c, nil
}

// New creates a client from injected session cookies. Empty csrfToken and
// sessionID give a read-only client.
func New(username, csrfToken, sessionID string, opts ...Option) (*Client, error) {
	cfg := ClientConfig{
		Username:  username,
		CSRFToken: csrfToken,
		SessionID: sessionID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// Account returns the account the client acts as.
func (c *Client) Account() *Account {
	return c.account
}

// Credentials returns a snapshot of the current session state.
func (c *Client) Credentials() Credentials {
	return c.account.Credentials()
}

// Authenticated reports whether write actions are permitted.
func (c *Client) Authenticated() bool {
	return c.account.Authenticated()
}

// SetUsername replaces the account username.
func (c *Client) SetUsername(username string) *Client {
	c.account.setUsername(username)
	return c
}

// SetCSRFToken replaces the CSRF token. Requests already in flight keep the
// snapshot they started with.
func (c *Client) SetCSRFToken(token string) *Client {
	c.account.setCSRFToken(token)
	return c
}

// SetSessionID replaces the session id.
func (c *Client) SetSessionID(sessionID string) *Client {
	c.account.setSessionID(sessionID)
	return c
}

// SetCredentials replaces both session cookies at once.
func (c *Client) SetCredentials(csrfToken, sessionID string) *Client {
	c.account.applySession(sessionCookies{CSRFToken: csrfToken, SessionID: sessionID})
	return c
}

// SetPassword enables the password login strategy.
func (c *Client) SetPassword(password, totpSecret string) *Client {
	c.account.setPassword(password, totpSecret)
	return c
}

// Headers returns the header template the next request would carry.
func (c *Client) Headers() map[string]string {
	return sessionHeaders(c.account.Credentials(), c.cfg.UserAgent, c.ep.root())
}

// requireAuth fails fast before any network call when the session is
// incomplete.
func (c *Client) requireAuth(op string) (Credentials, error) {
	creds := c.account.Credentials()
	if !creds.Authenticated() {
		return creds, &Error{
			Kind: KindAuthRequired,
			Op:   op,
			Err:  fmt.Errorf("csrf token and session id are required"),
		}
	}
	return creds, nil
}
