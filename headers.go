package instagood

import stealth "github.com/anatolykoptev/go-stealth"

// defaultUserAgent is the fallback User-Agent when none is configured.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// baseHeaders returns the header set every request carries.
func baseHeaders(userAgent, referer string) map[string]string {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	h := map[string]string{
		"user-agent":       userAgent,
		"content-type":     contentTypeJSON,
		"accept":           "*/*",
		"accept-language":  "en-US",
		"x-instagram-ajax": "1",
		"x-requested-with": "XMLHttpRequest",
		"referer":          referer,
	}
	if ch := stealth.ClientHintsHeaders(userAgent); ch != nil {
		for k, v := range ch {
			h[k] = v
		}
	}
	return h
}

// sessionHeaders returns baseHeaders plus the CSRF header and the composed
// session cookie for the given snapshot.
func sessionHeaders(creds Credentials, userAgent, referer string) map[string]string {
	h := baseHeaders(userAgent, referer)
	if creds.CSRFToken != "" {
		h["x-csrftoken"] = creds.CSRFToken
	}
	if cookie := composeCookie(creds); cookie != "" && (creds.CSRFToken != "" || creds.SessionID != "") {
		h["cookie"] = cookie
	}
	return h
}

// headerOrder is the browser header order used for fingerprint consistency.
var headerOrder = []string{
	"content-type",
	"x-csrftoken",
	"x-instagram-ajax",
	"x-requested-with",
	"sec-ch-ua",
	"sec-ch-ua-mobile",
	"sec-ch-ua-platform",
	"cookie",
	"user-agent",
	"accept",
	"accept-language",
	"referer",
}
