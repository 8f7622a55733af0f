package instagood

import (
	"regexp"
	"sync"
)

var numericIDRe = regexp.MustCompile(`^\d+$`)

// IsNumericID reports whether s is an already-resolved numeric user id.
func IsNumericID(s string) bool {
	return numericIDRe.MatchString(s)
}

// Account holds the identity and session artifacts of one platform account.
// All fields are guarded by mu; use Credentials for a consistent snapshot.
type Account struct {
	mu sync.Mutex

	username   string
	password   string
	totpSecret string

	csrfToken string
	sessionID string
	dsUserID  string
	mid       string
	mcd       string
}

// Credentials is an immutable per-request snapshot of an Account.
type Credentials struct {
	Username  string
	CSRFToken string
	SessionID string
	DSUserID  string
	MID       string
	MCD       string
}

// Authenticated reports whether the snapshot allows write actions.
func (c Credentials) Authenticated() bool {
	return c.CSRFToken != "" && c.SessionID != ""
}

func newAccount(cfg ClientConfig) *Account {
	return &Account{
		username:   cfg.Username,
		password:   cfg.Password,
		totpSecret: cfg.TOTPSecret,
		csrfToken:  cfg.CSRFToken,
		sessionID:  cfg.SessionID,
		dsUserID:   cfg.DSUserID,
	}
}

// Credentials returns a snapshot of the session state under lock.
func (a *Account) Credentials() Credentials {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Credentials{
		Username:  a.username,
		CSRFToken: a.csrfToken,
		SessionID: a.sessionID,
		DSUserID:  a.dsUserID,
		MID:       a.mid,
		MCD:       a.mcd,
	}
}

// loginSecrets returns the password strategy inputs under lock.
func (a *Account) loginSecrets() (username, password, totpSecret string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.username, a.password, a.totpSecret
}

// Authenticated reports whether both the CSRF token and session id are set.
func (a *Account) Authenticated() bool {
	return a.Credentials().Authenticated()
}

func (a *Account) setUsername(v string) {
	a.mu.Lock()
	a.username = v
	a.mu.Unlock()
}

func (a *Account) setCSRFToken(v string) {
	a.mu.Lock()
	a.csrfToken = v
	a.mu.Unlock()
}

func (a *Account) setSessionID(v string) {
	a.mu.Lock()
	a.sessionID = v
	a.mu.Unlock()
}

func (a *Account) setPassword(password, totpSecret string) {
	a.mu.Lock()
	a.password = password
	a.totpSecret = totpSecret
	a.mu.Unlock()
}

// applySession atomically stores the cookies captured from a login response.
func (a *Account) applySession(s sessionCookies) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.csrfToken = s.CSRFToken
	a.sessionID = s.SessionID
	if s.DSUserID != "" {
		a.dsUserID = s.DSUserID
	}
	if s.MID != "" {
		a.mid = s.MID
	}
	if s.MCD != "" {
		a.mcd = s.MCD
	}
}

// clearSession drops everything but the username and login secrets.
func (a *Account) clearSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.csrfToken = ""
	a.sessionID = ""
	a.dsUserID = ""
	a.mid = ""
	a.mcd = ""
}
