package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/QuickAct/internal/gateway"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    ErrorKind
		message string
	}{
		{"status 401", &gateway.StatusError{Code: 401, Message: "No auth credentials found"}, AuthError, "Authentication failed."},
		{"status 403", &gateway.StatusError{Code: 403}, AuthError, "Access forbidden."},
		{"status 429", &gateway.StatusError{Code: 429, Message: "quota"}, RateLimitError, "Rate limit exceeded: quota"},
		{"status 500", &gateway.StatusError{Code: 500, Message: "upstream"}, UnknownError, "Error: API request failed (500"},
		{"unreachable", fmt.Errorf("dial: %w", gateway.ErrUnreachable), NetworkError, "Network error."},
		{"deadline", context.DeadlineExceeded, NetworkError, "Network error."},
		{"net error", &net.DNSError{Err: "no such host", Name: "openrouter.ai"}, NetworkError, "Network error."},
		{"text 401", errors.New("HTTP 401 returned"), AuthError, "Authentication failed."},
		{"text unauthorized", errors.New("Unauthorized"), AuthError, "Authentication failed."},
		{"text forbidden", errors.New("Forbidden by policy"), AuthError, "Access forbidden."},
		{"text rate limit", errors.New("Rate limit reached for model"), RateLimitError, "Rate limit exceeded: Rate limit reached for model"},
		{"text connection", errors.New("connection reset by peer"), NetworkError, "Network error."},
		{"other", errors.New("model overloaded"), UnknownError, "Error: model overloaded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Contains(t, got.Message, tt.message)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyPassesActionErrorsThrough(t *testing.T) {
	orig := validationError("Please enter some text to process.", "")
	assert.Same(t, orig, Classify(fmt.Errorf("wrapped: %w", orig)))
	assert.Nil(t, Classify(nil))
}

func TestActionErrorMessage(t *testing.T) {
	err := Classify(&gateway.StatusError{Code: 429, Message: "quota"})
	assert.Equal(t, "Rate limit exceeded: quota", err.Error())

	err = Classify(&gateway.StatusError{Code: 401, Message: "bad key"})
	assert.Contains(t, err.Error(), "Authentication failed.: ")
	assert.Equal(t, "auth", err.Kind.String())
}
