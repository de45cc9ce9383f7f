package llm

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorKind is the likely cause of a backend failure.
type ErrorKind string

const (
	KindRateLimit  ErrorKind = "rate_limit"
	KindQuota      ErrorKind = "quota"
	KindAuth       ErrorKind = "auth"
	KindConnection ErrorKind = "connection"
	KindUnknown    ErrorKind = "unknown"
)

// BackendError carries an actionable message for a failed backend call.
type BackendError struct {
	Kind     ErrorKind
	Provider string
	Msg      string
	Err      error
}

func (e *BackendError) Error() string { return e.Msg }

func (e *BackendError) Unwrap() error { return e.Err }

// keyword families, checked in order. Matching on error text is best-effort
// and can pick the wrong family when a message mentions several causes.
var errorKeywords = []struct {
	kind  ErrorKind
	words []string
}{
	{KindRateLimit, []string{"rate limit", "rate_limit", "too many requests", "resource_exhausted"}},
	{KindQuota, []string{"quota", "insufficient_quota", "billing"}},
	{KindAuth, []string{"auth", "api key", "api_key", "permission_denied"}},
	{KindConnection, []string{"connection", "network", "no such host", "dial tcp", "timeout", "deadline exceeded"}},
}

// Classify wraps err in a *BackendError whose message names the likely cause
// and a remedy. label is the backend's display name, e.g. "OpenAI".
// A nil err or an error that is already a *BackendError is returned unchanged.
func Classify(label string, err error) error {
	if err == nil {
		return nil
	}
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	kind := classifyKind(err)
	return &BackendError{Kind: kind, Provider: label, Msg: describe(label, kind, err), Err: err}
}

func classifyKind(err error) ErrorKind {
	msg := strings.ToLower(err.Error())
	for _, fam := range errorKeywords {
		for _, w := range fam.words {
			if strings.Contains(msg, w) {
				return fam.kind
			}
		}
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return KindConnection
	}
	return KindUnknown
}

func describe(label string, kind ErrorKind, err error) string {
	switch kind {
	case KindRateLimit:
		return fmt.Sprintf("%s rate limit reached. Please try again later or use a different provider with the --provider flag. Details: %v", label, err)
	case KindQuota:
		return fmt.Sprintf("%s API quota exceeded. Please check your billing details or use a different provider with the --provider flag.", label)
	case KindAuth:
		return fmt.Sprintf("Invalid %s API key. Please check your API key (--set-api-key) and try again.", label)
	case KindConnection:
		return fmt.Sprintf("Connection to %s failed. Please check your internet connection or try again later.", label)
	default:
		return fmt.Sprintf("%s API error: %v. Try using a different model or provider.", label, err)
	}
}
