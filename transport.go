package instagood

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/go-resty/resty/v2"
)

// Request describes one outbound call. It is built fresh per call.
type Request struct {
	Method     string
	URL        string
	Headers    map[string]string
	Body       []byte
	ExpectJSON bool
}

// Response is the raw result of a Request. Header keys are lower-case;
// repeated headers such as set-cookie are joined with newlines.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Transport sends a Request. Implementations must honor ctx cancellation.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// StealthTransport sends requests through a browser-fingerprinted client.
type StealthTransport struct {
	client *stealth.BrowserClient
}

// NewStealthTransport creates a StealthTransport, optionally behind proxy.
func NewStealthTransport(proxy string) (*StealthTransport, error) {
	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(headerOrder),
	}
	if proxy != "" {
		opts = append(opts, stealth.WithProxy(proxy))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}
	return &StealthTransport{client: bc}, nil
}

type stealthResult struct {
	body    []byte
	headers map[string]string
	status  int
	err     error
}

// Do implements Transport. The browser client has no context support, so
// the call is abandoned (not aborted) when ctx ends first.
func (t *StealthTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	done := make(chan stealthResult, 1)
	go func() {
		b, h, s, err := t.client.DoWithHeaderOrder(req.Method, req.URL, req.Headers, body, headerOrder)
		done <- stealthResult{body: b, headers: h, status: s, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return &Response{Status: r.status, Headers: lowerKeys(r.headers), Body: r.body}, nil
	}
}

// RestyTransport sends requests through a plain resty client.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport wraps client, or a fresh resty client when nil. The
// fresh client has no cookie jar: session cookies are owned by Account.
func NewRestyTransport(client *resty.Client) *RestyTransport {
	if client == nil {
		client = resty.New().SetCookieJar(nil)
	}
	return &RestyTransport{client: client}
}

// Do implements Transport.
func (t *RestyTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	r := t.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers)
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(resp.Header()))
	for k, vs := range resp.Header() {
		headers[strings.ToLower(k)] = strings.Join(vs, "\n")
	}
	return &Response{Status: resp.StatusCode(), Headers: headers, Body: resp.Body()}, nil
}

func lowerKeys(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = v
	}
	return out
}
