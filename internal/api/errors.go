package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/swfz/gh-reporank/internal/models"
)

// ErrorKind classifies lookup failures
type ErrorKind string

const (
	KindNotFound  ErrorKind = "not-found"
	KindTransient ErrorKind = "transient-network"
	KindMalformed ErrorKind = "malformed-response"
	KindUnknown   ErrorKind = "unknown"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrTransient = errors.New("transient network failure")
	ErrMalformed = errors.New("malformed response")
)

// LookupError is returned by FetchRepoInfo for every failure
type LookupError struct {
	Kind     ErrorKind
	Identity models.Identity
	Message  string // Human-readable message
	Err      error  // Underlying cause, may be nil
}

func (e *LookupError) Error() string {
	if e.Identity.Complete() {
		return fmt.Sprintf("%s: %s", e.Identity, e.Message)
	}
	return e.Message
}

func (e *LookupError) Unwrap() error { return e.Err }

// Is matches the sentinel error for the kind
func (e *LookupError) Is(target error) bool {
	switch e.Kind {
	case KindNotFound:
		return target == ErrNotFound
	case KindTransient:
		return target == ErrTransient
	case KindMalformed:
		return target == ErrMalformed
	default:
		return false
	}
}

// Retryable reports whether another attempt may succeed
func (e *LookupError) Retryable() bool {
	return e.Kind == KindTransient
}

// NotFound creates a not-found LookupError
func NotFound(id models.Identity, message string) *LookupError {
	return &LookupError{Kind: KindNotFound, Identity: id, Message: message}
}

// classify wraps err into a LookupError, guessing its kind from the
// error chain and, for GraphQL errors that carry no type, the message
func classify(id models.Identity, err error) *LookupError {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr
	}

	kind := KindUnknown
	msg := err.Error()
	lower := strings.ToLower(msg)

	var (
		netErr       net.Error
		urlErr       *url.Error
		syntaxErr    *json.SyntaxError
		unmarshalErr *json.UnmarshalTypeError
		statusErr    *StatusError
	)

	switch {
	case errors.Is(err, context.Canceled):
		kind = KindUnknown
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTransient
		msg = "request timed out"
	case strings.Contains(lower, "would exceed context deadline"):
		// rate.Limiter.Wait refuses to wait past the deadline
		kind = KindTransient
		msg = "request timed out waiting for rate limit"
	case errors.As(err, &statusErr):
		kind = statusErr.Kind()
	case errors.As(err, &syntaxErr), errors.As(err, &unmarshalErr):
		kind = KindMalformed
	case errors.As(err, &netErr), errors.As(err, &urlErr):
		kind = KindTransient
	case strings.Contains(lower, "could not resolve to"):
		kind = KindNotFound
		msg = "repository not found"
	case strings.Contains(lower, "non-200 ok status code: 5"),
		strings.Contains(lower, "non-200 ok status code: 429"):
		kind = KindTransient
	case strings.Contains(lower, "doesn't exist in any of"),
		strings.Contains(lower, "unexpected end of json"):
		kind = KindMalformed
	}

	return &LookupError{Kind: kind, Identity: id, Message: msg, Err: err}
}

// StatusError is returned by REST calls that receive a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Kind maps the HTTP status to a lookup error kind
func (e *StatusError) Kind() ErrorKind {
	switch {
	case e.StatusCode == 404:
		return KindNotFound
	case e.StatusCode == 429 || e.StatusCode >= 500:
		return KindTransient
	default:
		return KindUnknown
	}
}
