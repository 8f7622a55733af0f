package instagood

import (
	"regexp"
	"strings"
)

// Cookie names the platform uses for the web session.
const (
	cookieCSRFToken = "csrftoken"
	cookieSessionID = "sessionid"
	cookieDSUserID  = "ds_user_id"
	cookieMID       = "mid"
	cookieMCD       = "mcd"
	cookieRUR       = "rur"

	// defaultRUR is the region routing hint sent with every authenticated call.
	defaultRUR = "FTW"
)

var cookiePatterns = map[string]*regexp.Regexp{
	cookieCSRFToken: cookiePattern(cookieCSRFToken),
	cookieSessionID: cookiePattern(cookieSessionID),
	cookieDSUserID:  cookiePattern(cookieDSUserID),
	cookieMID:       cookiePattern(cookieMID),
	cookieMCD:       cookiePattern(cookieMCD),
}

func cookiePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[\s;,])` + regexp.QuoteMeta(name) + `=([^;,\s]*)`)
}

// sessionCookies are the values captured from set-cookie during login.
type sessionCookies struct {
	CSRFToken string
	SessionID string
	DSUserID  string
	MID       string
	MCD       string
}

// extractCookie returns the last non-empty value of name in a set-cookie
// header. Multiple set-cookie lines may be joined by newlines or commas.
func extractCookie(setCookie, name string) string {
	re, ok := cookiePatterns[name]
	if !ok {
		re = cookiePattern(name)
	}
	var val string
	for _, m := range re.FindAllStringSubmatch(setCookie, -1) {
		v := strings.Trim(m[1], `"`)
		if v != "" {
			val = v
		}
	}
	return val
}

// parseSessionCookies extracts every session cookie from response headers.
func parseSessionCookies(headers map[string]string) sessionCookies {
	sc := headers["set-cookie"]
	return sessionCookies{
		CSRFToken: extractCookie(sc, cookieCSRFToken),
		SessionID: extractCookie(sc, cookieSessionID),
		DSUserID:  extractCookie(sc, cookieDSUserID),
		MID:       extractCookie(sc, cookieMID),
		MCD:       extractCookie(sc, cookieMCD),
	}
}

// composeCookie renders the Cookie header for an authenticated request.
// Cookies the session never received are left out.
func composeCookie(c Credentials) string {
	pairs := [][2]string{
		{cookieMID, c.MID},
		{cookieMCD, c.MCD},
		{cookieCSRFToken, c.CSRFToken},
		{cookieDSUserID, c.DSUserID},
		{cookieSessionID, c.SessionID},
		{cookieRUR, defaultRUR},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		parts = append(parts, p[0]+"="+p[1])
	}
	return strings.Join(parts, "; ")
}

// maskToken keeps a short prefix of a secret for log lines.
func maskToken(s string) string {
	return s[:min(8, len(s))]
}
