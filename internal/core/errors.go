package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/Rorical/QuickAct/internal/gateway"
)

// ErrorKind classifies every failure the controller surfaces.
type ErrorKind int

const (
	ValidationError ErrorKind = iota
	AuthError
	RateLimitError
	NetworkError
	UnknownError
)

func (k ErrorKind) String() string {
	switch k {
	case ValidationError:
		return "validation"
	case AuthError:
		return "auth"
	case RateLimitError:
		return "rate_limit"
	case NetworkError:
		return "network"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned by Send while a request is outstanding.
	ErrBusy = errors.New("a request is already in flight")
	// ErrHidden is returned by Send while the overlay is hidden.
	ErrHidden = errors.New("overlay is hidden")
)

// ActionError is the only error shape that reaches the result policy and the UI.
type ActionError struct {
	Kind    ErrorKind
	Message string // user facing
	Hint    string
	Detail  string // raw provider text, kept for diagnostics
	Err     error
}

func (e *ActionError) Error() string {
	if e.Detail != "" && !strings.Contains(e.Message, e.Detail) {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func validationError(message, hint string) *ActionError {
	return &ActionError{Kind: ValidationError, Message: message, Hint: hint}
}

// Classify converts any gateway failure into an *ActionError. Typed gateway
// errors are preferred; plain errors fall back to matching the message text.
func Classify(err error) *ActionError {
	if err == nil {
		return nil
	}
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr
	}

	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Unauthorized():
			return authError(err, "Authentication failed.")
		case statusErr.Forbidden():
			return &ActionError{
				Kind:    AuthError,
				Message: "Access forbidden.",
				Hint:    "Your API key may not have permission to use this model.",
				Detail:  statusErr.Message,
				Err:     err,
			}
		case statusErr.RateLimited():
			return rateLimitError(err, statusErr.Message)
		}
		return unknownError(err)
	}

	var netErr net.Error
	if errors.Is(err, gateway.ErrUnreachable) || errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return &ActionError{
			Kind:    NetworkError,
			Message: "Network error.",
			Hint:    "Please check your internet connection and try again.",
			Detail:  err.Error(),
			Err:     err,
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "401") || strings.Contains(lower, "unauthorized") || strings.Contains(lower, "no auth credentials"):
		return authError(err, "Authentication failed.")
	case strings.Contains(msg, "403") || strings.Contains(lower, "forbidden"):
		return &ActionError{
			Kind:    AuthError,
			Message: "Access forbidden.",
			Hint:    "Your API key may not have permission to use this model.",
			Detail:  msg,
			Err:     err,
		}
	case strings.Contains(msg, "429") || strings.Contains(lower, "rate limit"):
		return rateLimitError(err, msg)
	case strings.Contains(lower, "network") || strings.Contains(lower, "connection"):
		return &ActionError{
			Kind:    NetworkError,
			Message: "Network error.",
			Hint:    "Please check your internet connection and try again.",
			Detail:  msg,
			Err:     err,
		}
	}
	return unknownError(err)
}

func authError(err error, message string) *ActionError {
	return &ActionError{
		Kind:    AuthError,
		Message: message,
		Hint:    "Please check your OpenRouter API key in settings.",
		Detail:  err.Error(),
		Err:     err,
	}
}

func rateLimitError(err error, detail string) *ActionError {
	if detail == "" {
		detail = err.Error()
	}
	return &ActionError{
		Kind:    RateLimitError,
		Message: "Rate limit exceeded: " + detail,
		Hint:    "Please try again later.",
		Detail:  detail,
		Err:     err,
	}
}

func unknownError(err error) *ActionError {
	return &ActionError{
		Kind:    UnknownError,
		Message: "Error: " + err.Error(),
		Detail:  err.Error(),
		Err:     err,
	}
}
