package instagood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// send performs exactly one attempt of req under the configured timeout.
// Transport failures and timeouts come back as *Error.
func (c *Client) send(ctx context.Context, op string, req *Request) (*Response, error) {
	if c.cfg.Jitter {
		if err := stealth.DefaultJitter.Sleep(ctx); err != nil {
			return nil, &Error{Kind: KindTransport, Op: op, Err: err}
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.transport.Do(reqCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Kind: KindTimeout, Op: op, Err: fmt.Errorf("no response within %s: %w", c.cfg.RequestTimeout, err)}
		}
		return nil, &Error{Kind: KindTransport, Op: op, Err: err}
	}
	return resp, nil
}

// doGET executes an idempotent GET with bounded retry on transport failures
// and 5xx responses.
func (c *Client) doGET(ctx context.Context, op, url string) (*Response, error) {
	var lastErr error
	for attempt := range c.cfg.MaxRetries {
		if attempt > 0 {
			delay := c.cfg.Backoff.Duration(attempt - 1)
			c.log.Debug("retrying request",
				slog.String("op", op),
				slog.Int("attempt", attempt+1),
				slog.Duration("delay", delay),
				slog.Any("error", lastErr))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				kind := KindTransport
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					kind = KindTimeout
				}
				return nil, &Error{Kind: kind, Op: op, Err: ctx.Err()}
			}
		}

		req := &Request{
			Method:     http.MethodGet,
			URL:        url,
			Headers:    sessionHeaders(c.account.Credentials(), c.cfg.UserAgent, c.ep.root()),
			ExpectJSON: true,
		}
		resp, err := c.send(ctx, op, req)
		if err != nil {
			if KindOf(err) != KindTransport {
				return nil, err
			}
			lastErr = err
			continue
		}
		if resp.Status >= 500 {
			lastErr = &Error{Kind: KindRejected, Op: op, Status: resp.Status, Message: truncateBytes(resp.Body, 200)}
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("%s failed after %d attempts: %w", op, c.cfg.MaxRetries, lastErr)
}

// doPOST executes a mutation once with the authenticated header set.
// Mutations are never retried.
func (c *Client) doPOST(ctx context.Context, op, url, contentType string, body []byte) (*Response, error) {
	creds, err := c.requireAuth(op)
	if err != nil {
		return nil, err
	}
	headers := sessionHeaders(creds, c.cfg.UserAgent, c.ep.root())
	if contentType != "" {
		headers["content-type"] = contentType
	}
	c.log.Debug("post",
		slog.String("op", op),
		slog.String("user", creds.Username),
		slog.String("csrf_prefix", maskToken(creds.CSRFToken)))
	return c.send(ctx, op, &Request{
		Method:     http.MethodPost,
		URL:        url,
		Headers:    headers,
		Body:       body,
		ExpectJSON: true,
	})
}

// decodeJSON unmarshals a body into v. Anything that is not valid JSON for
// v is reported as a malformed response.
func decodeJSON(op string, resp *Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &Error{
			Kind:   KindMalformedResponse,
			Op:     op,
			Status: resp.Status,
			Err:    fmt.Errorf("%w (body: %s)", err, truncateBytes(resp.Body, 200)),
		}
	}
	return nil
}

// decodeOK decodes a response that must carry status "ok". A non-JSON body
// on an error status is a rejection, on a 2xx it is malformed.
func decodeOK(op string, resp *Response, v any) error {
	ok2xx := resp.Status >= 200 && resp.Status < 300
	if !json.Valid(resp.Body) {
		if !ok2xx {
			return &Error{Kind: KindRejected, Op: op, Status: resp.Status, Message: truncateBytes(resp.Body, 200)}
		}
		return decodeJSON(op, resp, v)
	}

	var env struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(op, resp, &env); err != nil {
		return err
	}
	if !ok2xx || env.Status != StatusOK {
		return classifyResponse(op, resp.Status, resp.Body)
	}
	return decodeJSON(op, resp, v)
}
