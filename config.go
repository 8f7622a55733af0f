package instagood

import (
	"log/slog"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// ClientConfig holds all configuration for the client.
type ClientConfig struct {
	// Username is the account the client acts as.
	Username string

	// CSRFToken and SessionID are cookies captured out-of-band. Both must be
	// set for write actions; leave them empty for read-only use.
	CSRFToken string
	SessionID string

	// DSUserID is the numeric id of the session owner, sent as ds_user_id.
	DSUserID string

	// Password enables the password login strategy (see Client.Login).
	Password string

	// TOTPSecret answers a two-factor challenge during Login.
	TOTPSecret string

	// BaseURL overrides DefaultBaseURL.
	BaseURL string

	// UserAgent overrides the default browser User-Agent.
	UserAgent string

	// Proxy is used by the default transport.
	Proxy string

	// Transport sends requests. Default: a StealthTransport.
	Transport Transport

	// RequestTimeout bounds each outbound request.
	RequestTimeout time.Duration

	// MaxRetries is the number of attempts for idempotent GETs. POSTs are
	// always attempted once.
	MaxRetries int

	// Backoff spaces GET retries.
	Backoff stealth.BackoffConfig

	// Jitter sleeps a short random delay before each request.
	Jitter bool

	// Logger receives debug diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Backoff.InitialWait == 0 {
		cfg.Backoff = stealth.BackoffConfig{
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
			JitterPct:   0.3,
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}

// Option customizes the config built by New.
type Option func(*ClientConfig)

// WithTransport sets the request transport.
func WithTransport(t Transport) Option {
	return func(cfg *ClientConfig) { cfg.Transport = t }
}

// WithBaseURL points the client at another host.
func WithBaseURL(u string) Option {
	return func(cfg *ClientConfig) { cfg.BaseURL = u }
}

// WithPassword enables the password login strategy.
func WithPassword(password, totpSecret string) Option {
	return func(cfg *ClientConfig) {
		cfg.Password = password
		cfg.TOTPSecret = totpSecret
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(cfg *ClientConfig) { cfg.RequestTimeout = d }
}

// WithRetries sets the GET attempt count.
func WithRetries(n int) Option {
	return func(cfg *ClientConfig) { cfg.MaxRetries = n }
}

// WithProxy routes the default transport through proxy.
func WithProxy(proxy string) Option {
	return func(cfg *ClientConfig) { cfg.Proxy = proxy }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *ClientConfig) { cfg.Logger = l }
}
