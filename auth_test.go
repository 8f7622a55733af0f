package instagood

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const landingSetCookie = "csrftoken=anonTok; Path=/; Secure\nmid=anonMid; Path=/; Secure"

// loginRoutes serves the landing page and answers the login endpoints with
// the given responses.
func loginRoutes(login, twoFactor *Response) handlerFunc {
	return func(_ context.Context, req *Request) (*Response, error) {
		switch req.URL {
		case DefaultBaseURL + pathRoot:
			return &Response{Status: 200, Headers: map[string]string{"set-cookie": landingSetCookie}, Body: []byte("<html></html>")}, nil
		case DefaultBaseURL + pathLogin:
			return login, nil
		case DefaultBaseURL + pathLoginTwoFactor:
			if twoFactor != nil {
				return twoFactor, nil
			}
		}
		return jsonResp(404, `{"status":"fail"}`), nil
	}
}

func withSetCookie(r *Response, setCookie string) *Response {
	r.Headers["set-cookie"] = setCookie
	return r
}

func formOf(t *testing.T, req *Request) url.Values {
	t.Helper()
	form, err := url.ParseQuery(string(req.Body))
	require.NoError(t, err)
	return form
}

func TestLogin_Password(t *testing.T) {
	login := withSetCookie(jsonResp(200, `{"authenticated":true,"user":true,"userId":"257938510","oneTapPrompt":true,"status":"ok"}`), loginSetCookie)
	c, ft := newTestClient(t, ClientConfig{Username: "alice", Password: "hunter2"}, loginRoutes(login, nil))

	res, err := c.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &LoginResult{Status: StatusOK, Authenticated: true, UserID: "257938510"}, res)

	calls := ft.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodGet, calls[0].Method)

	post := calls[1]
	assert.Equal(t, http.MethodPost, post.Method)
	assert.Equal(t, contentTypeForm, post.Headers["content-type"])
	assert.Equal(t, "anonTok", post.Headers["x-csrftoken"])
	assert.Contains(t, post.Headers["cookie"], "mid=anonMid")
	form := formOf(t, post)
	assert.Equal(t, "alice", form.Get("username"))
	assert.Equal(t, "hunter2", form.Get("password"))

	creds := c.Credentials()
	assert.True(t, creds.Authenticated())
	assert.Equal(t, "FRESHtoken123", creds.CSRFToken)
	assert.Equal(t, "257938510%3AabcDEF%3A12", creds.SessionID)
	assert.Equal(t, "257938510", creds.DSUserID)
	assert.Equal(t, "XFa2mAALAAE", creds.MID)
	assert.Equal(t, "3", creds.MCD)
	assert.Equal(t,
		"mid=XFa2mAALAAE; mcd=3; csrftoken=FRESHtoken123; ds_user_id=257938510; sessionid=257938510%3AabcDEF%3A12; rur=FTW",
		c.Headers()["cookie"])
}

func TestLogin_FallsBackToAnonymousCookies(t *testing.T) {
	login := withSetCookie(jsonResp(200, `{"authenticated":true,"user":true,"userId":"42","status":"ok"}`), "sessionid=s1; Path=/")
	c, _ := newTestClient(t, ClientConfig{Username: "alice", Password: "pw"}, loginRoutes(login, nil))

	_, err := c.Login(context.Background())
	require.NoError(t, err)

	creds := c.Credentials()
	assert.Equal(t, "anonTok", creds.CSRFToken)
	assert.Equal(t, "anonMid", creds.MID)
	assert.Equal(t, "42", creds.DSUserID)
	assert.Equal(t, "s1", creds.SessionID)
}

func TestLogin_TwoFactor(t *testing.T) {
	challenge := withSetCookie(
		jsonResp(400, `{"message":"","two_factor_required":true,"two_factor_info":{"username":"alice","two_factor_identifier":"ident-1"},"status":"fail"}`),
		"csrftoken=rotatedTok; Path=/")
	verified := withSetCookie(jsonResp(200, `{"authenticated":true,"user":true,"userId":"257938510","status":"ok"}`), loginSetCookie)
	c, ft := newTestClient(t, ClientConfig{Username: "alice", Password: "pw", TOTPSecret: "JBSWY3DPEHPK3PXP"}, loginRoutes(challenge, verified))

	res, err := c.Login(context.Background())
	require.NoError(t, err)
	assert.True(t, res.TwoFactor)
	assert.True(t, c.Authenticated())

	calls := ft.calls()
	require.Len(t, calls, 3)
	tf := calls[2]
	assert.Equal(t, DefaultBaseURL+pathLoginTwoFactor, tf.URL)
	assert.Equal(t, "rotatedTok", tf.Headers["x-csrftoken"])

	form := formOf(t, tf)
	assert.Equal(t, "alice", form.Get("username"))
	assert.Equal(t, "ident-1", form.Get("identifier"))
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), form.Get("verificationCode"))
}

func TestLogin_TwoFactorWithoutSecret(t *testing.T) {
	challenge := jsonResp(400, `{"two_factor_required":true,"two_factor_info":{"two_factor_identifier":"x"},"status":"fail"}`)
	c, ft := newTestClient(t, ClientConfig{Username: "alice", Password: "pw"}, loginRoutes(challenge, nil))

	_, err := c.Login(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthRequired)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "two_factor_required", e.Message)
	assert.Len(t, ft.calls(), 2)
	assert.False(t, c.Authenticated())
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		login   *Response
		want    error
		message string
	}{
		{"wrong password", jsonResp(200, `{"authenticated":false,"user":true,"status":"ok"}`), ErrRejected, "not authenticated"},
		{"checkpoint", jsonResp(400, `{"message":"checkpoint_required","checkpoint_url":"/challenge/","status":"fail"}`), ErrRejected, "checkpoint_required"},
		{"no sessionid", jsonResp(200, `{"authenticated":true,"user":true,"userId":"1","status":"ok"}`), ErrRejected, "authenticated but no sessionid cookie"},
		{"html", jsonResp(200, `<html>`), ErrMalformedResponse, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, ClientConfig{Username: "alice", Password: "pw"}, loginRoutes(tt.login, nil))

			res, err := c.Login(context.Background())
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			if tt.message != "" {
				var e *Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.message, e.Message)
			}
			assert.False(t, c.Authenticated())
		})
	}
}

func TestLogin_RequiresPassword(t *testing.T) {
	c, ft := newTestClient(t, ClientConfig{Username: "alice"}, nil)

	_, err := c.Login(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Empty(t, ft.calls())
}

func TestLogin_LandingWithoutToken(t *testing.T) {
	c, _ := newTestClient(t, ClientConfig{Username: "alice", Password: "pw"}, func(context.Context, *Request) (*Response, error) {
		return jsonResp(200, "<html></html>"), nil
	})

	_, err := c.Login(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
}

func TestLogout_ClearsSession(t *testing.T) {
	c, ft := newTestClient(t, authedConfig(), func(context.Context, *Request) (*Response, error) {
		return jsonResp(200, `{"status":"ok"}`), nil
	})

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.Authenticated())
	assert.Equal(t, "alice", c.Credentials().Username)

	calls := ft.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, DefaultBaseURL+pathLogout, calls[0].URL)

	_, err := c.Like(context.Background(), "1")
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestLogout_FailureKeepsSession(t *testing.T) {
	c, _ := newTestClient(t, authedConfig(), func(context.Context, *Request) (*Response, error) {
		return jsonResp(403, `{"message":"login_required","status":"fail"}`), nil
	})

	err := c.Logout(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
	assert.True(t, c.Authenticated())
}
