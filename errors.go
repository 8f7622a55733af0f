package instagood

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed operation.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthRequired
	KindUserNotFound
	KindRejected
	KindMalformedResponse
	KindTransport
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindAuthRequired:
		return "auth_required"
	case KindUserNotFound:
		return "user_not_found"
	case KindRejected:
		return "rejected"
	case KindMalformedResponse:
		return "malformed_response"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	}
	return "unknown"
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrAuthRequired      = &Error{Kind: KindAuthRequired}
	ErrUserNotFound      = &Error{Kind: KindUserNotFound}
	ErrRejected          = &Error{Kind: KindRejected}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrTransport         = &Error{Kind: KindTransport}
	ErrTimeout           = &Error{Kind: KindTimeout}
)

// Error is the failure envelope returned by every Client operation.
type Error struct {
	Kind Kind
	Op   string
	// Status is the HTTP status code, zero when no response was received.
	Status int
	// Message is the platform's own failure message, if it sent one.
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// failureEnvelope is the common shape of a platform failure body.
type failureEnvelope struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
	Spam      bool   `json:"spam"`
}

// classifyResponse builds a rejection for a response that was not "ok".
// The platform message is kept for the caller; nothing is retried.
func classifyResponse(op string, status int, body []byte) *Error {
	e := &Error{Kind: KindRejected, Op: op, Status: status}
	var env failureEnvelope
	if json.Unmarshal(body, &env) != nil {
		return e
	}
	switch {
	case env.Message != "":
		e.Message = env.Message
	case env.ErrorType != "":
		e.Message = env.ErrorType
	case env.Spam:
		e.Message = "feedback_required"
	}
	if e.Message == "" && status == 429 {
		e.Message = "rate limited"
	}
	return e
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
