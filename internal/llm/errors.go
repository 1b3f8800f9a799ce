package llm

import "strings"

// errorKind classifies a backend failure for fallback control flow.
type errorKind int

const (
	// errTransient covers timeouts, connection failures and 5xx responses;
	// worth retrying on the same backend.
	errTransient errorKind = iota
	// errQuota covers rate-limit and quota exhaustion; the backend will
	// keep failing, move on.
	errQuota
	// errAuth covers credential and permission failures.
	errAuth
	// errNotFound covers a missing or unknown model; terminal for the
	// backend.
	errNotFound
)

// classifyError buckets provider errors by message inspection. Provider
// SDKs do not expose stable error types across backends, so this matches
// the substrings the providers actually emit.
func classifyError(err error) errorKind {
	if err == nil {
		return errTransient
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource exhausted"):
		return errQuota
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "api key"):
		return errAuth
	case strings.Contains(msg, "404"),
		strings.Contains(msg, "not found"):
		return errNotFound
	default:
		// Timeouts, connection refused/reset, 5xx and anything
		// unrecognized get the retry path.
		return errTransient
	}
}
