package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// FailureKind categorizes classification failures for the failover loop.
type FailureKind string

const (
	FailureTimeout     FailureKind = "timeout"
	FailureAuth        FailureKind = "authentication"
	FailureRateLimited FailureKind = "rate_limited"
	FailureMalformed   FailureKind = "malformed_response"
	FailureNetwork     FailureKind = "network"
	FailureUnavailable FailureKind = "provider_unavailable"
)

// ClassifyError wraps a provider failure with its kind so the router can
// decide whether to disable the provider or just fall through to the next.
type ClassifyError struct {
	Provider string
	Kind     FailureKind
	Err      error
}

func (e *ClassifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ClassifyError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain.
// Unclassified errors are reported as provider_unavailable.
func KindOf(err error) FailureKind {
	var cerr *ClassifyError
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return FailureUnavailable
}

// IsNonRetryable reports whether retrying the same provider cannot help.
// Authentication failures need operator intervention, not another attempt.
func IsNonRetryable(err error) bool {
	return KindOf(err) == FailureAuth
}

// wrapTransport classifies context and network errors from an SDK call.
// Caller cancellation is passed through untouched so the router can abort.
func wrapTransport(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClassifyError{Provider: provider, Kind: FailureTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &ClassifyError{Provider: provider, Kind: FailureTimeout, Err: err}
		}
		return &ClassifyError{Provider: provider, Kind: FailureNetwork, Err: err}
	}

	return &ClassifyError{Provider: provider, Kind: FailureUnavailable, Err: err}
}

func errUnknownCategory(raw string) error {
	return fmt.Errorf("unknown category %q", raw)
}

// wrapStatus classifies an HTTP status code returned by a provider API.
func wrapStatus(provider string, status int, err error) *ClassifyError {
	kind := FailureUnavailable

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = FailureAuth
	case status == http.StatusTooManyRequests:
		kind = FailureRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		kind = FailureTimeout
	case status >= 500:
		kind = FailureUnavailable
	}

	return &ClassifyError{Provider: provider, Kind: kind, Err: err}
}
