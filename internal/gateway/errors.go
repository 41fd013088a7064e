package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable is wrapped by gateways when the remote could not be reached at all.
var ErrUnreachable = errors.New("network unreachable")

// StatusError is a failure the remote reported with a status code.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.Code)
	if text == "" {
		text = "status"
	}
	if e.Message == "" {
		return fmt.Sprintf("API request failed (%d %s)", e.Code, text)
	}
	return fmt.Sprintf("API request failed (%d %s): %s", e.Code, text, e.Message)
}

func (e *StatusError) Unauthorized() bool { return e.Code == http.StatusUnauthorized }
func (e *StatusError) Forbidden() bool    { return e.Code == http.StatusForbidden }
func (e *StatusError) RateLimited() bool  { return e.Code == http.StatusTooManyRequests }
