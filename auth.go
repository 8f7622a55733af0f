package instagood

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pquerna/otp/totp"
)

// Login runs the password strategy: fetch an anonymous CSRF token, post the
// credentials, answer a two-factor challenge with a TOTP code if one is
// configured, and store the session cookies from the final response.
//
// Injecting cookies through New or SetCredentials is the other, independent
// strategy; Login is only needed when no cookies are available.
func (c *Client) Login(ctx context.Context) (*LoginResult, error) {
	const op = "Login"

	username, password, totpSecret := c.account.loginSecrets()
	if username == "" || password == "" {
		return nil, &Error{Kind: KindAuthRequired, Op: op, Err: fmt.Errorf("username and password are required")}
	}
	c.log.Debug("logging in", slog.String("user", username))

	anon, err := c.anonymousSession(ctx, op)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	resp, err := c.postAnonymous(ctx, op, c.ep.login(), anon, form)
	if err != nil {
		return nil, err
	}
	lr, err := parseLogin(op, resp)
	if err != nil {
		return nil, err
	}

	twoFactor := lr.TwoFactorNeeded
	if twoFactor {
		if totpSecret == "" {
			return nil, &Error{Kind: KindAuthRequired, Op: op, Status: resp.Status, Message: "two_factor_required", Err: fmt.Errorf("no TOTP secret configured")}
		}
		if rotated := parseSessionCookies(resp.Headers).CSRFToken; rotated != "" {
			anon.CSRFToken = rotated
		}
		resp, lr, err = c.submitTwoFactor(ctx, anon, username, lr.TwoFactorInfo.Identifier, totpSecret)
		if err != nil {
			return nil, err
		}
	}

	if !lr.Authenticated {
		msg := lr.Message
		if msg == "" {
			msg = "not authenticated"
		}
		return nil, &Error{Kind: KindRejected, Op: op, Status: resp.Status, Message: msg}
	}

	session := parseSessionCookies(resp.Headers)
	if session.CSRFToken == "" {
		session.CSRFToken = anon.CSRFToken
	}
	if session.MID == "" {
		session.MID = anon.MID
	}
	if session.DSUserID == "" {
		session.DSUserID = string(lr.UserID)
	}
	if session.SessionID == "" {
		return nil, &Error{Kind: KindRejected, Op: op, Status: resp.Status, Message: "authenticated but no sessionid cookie"}
	}

	c.account.applySession(session)
	c.log.Debug("login successful",
		slog.String("user", username),
		slog.String("csrf_prefix", maskToken(session.CSRFToken)))

	return &LoginResult{
		Status:        StatusOK,
		Authenticated: true,
		UserID:        session.DSUserID,
		TwoFactor:     twoFactor,
	}, nil
}

// anonymousSession fetches the landing page for a CSRF token and mid.
func (c *Client) anonymousSession(ctx context.Context, op string) (Credentials, error) {
	resp, err := c.send(ctx, op, &Request{
		Method:  http.MethodGet,
		URL:     c.ep.root(),
		Headers: baseHeaders(c.cfg.UserAgent, c.ep.root()),
	})
	if err != nil {
		return Credentials{}, err
	}
	cookies := parseSessionCookies(resp.Headers)
	if cookies.CSRFToken == "" {
		return Credentials{}, &Error{Kind: KindRejected, Op: op, Status: resp.Status, Message: "no csrftoken cookie in landing response"}
	}
	return Credentials{CSRFToken: cookies.CSRFToken, MID: cookies.MID}, nil
}

// postAnonymous posts a form with only the pre-login cookies attached.
func (c *Client) postAnonymous(ctx context.Context, op, target string, anon Credentials, form url.Values) (*Response, error) {
	headers := sessionHeaders(anon, c.cfg.UserAgent, c.ep.root())
	headers["content-type"] = contentTypeForm
	return c.send(ctx, op, &Request{
		Method:     http.MethodPost,
		URL:        target,
		Headers:    headers,
		Body:       []byte(form.Encode()),
		ExpectJSON: true,
	})
}

// submitTwoFactor answers the two-factor challenge with a fresh TOTP code.
func (c *Client) submitTwoFactor(ctx context.Context, anon Credentials, username, identifier, secret string) (*Response, *loginResponse, error) {
	const op = "Login(two_factor)"

	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		return nil, nil, &Error{Kind: KindAuthRequired, Op: op, Err: fmt.Errorf("generate TOTP code: %w", err)}
	}
	c.log.Debug("submitting TOTP code", slog.String("user", username))

	form := url.Values{}
	form.Set("username", username)
	form.Set("verificationCode", code)
	form.Set("identifier", identifier)
	resp, err := c.postAnonymous(ctx, op, c.ep.loginTwoFactor(), anon, form)
	if err != nil {
		return nil, nil, err
	}
	lr, err := parseLogin(op, resp)
	if err != nil {
		return nil, nil, err
	}
	return resp, lr, nil
}

// Logout ends the session on the platform and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	const op = "Logout"

	resp, err := c.doPOST(ctx, op, c.ep.logout(), contentTypeForm, nil)
	if err != nil {
		return err
	}
	var raw struct {
		Status string `json:"status"`
	}
	if err := decodeOK(op, resp, &raw); err != nil {
		return err
	}
	c.account.clearSession()
	c.log.Debug("logged out", slog.String("user", c.account.Credentials().Username))
	return nil
}
