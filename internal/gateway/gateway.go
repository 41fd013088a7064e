// Package gateway holds the contracts of the collaborators the dispatch
// controller talks to: clipboard, AI backend, window and notifications.
package gateway

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

import (
	"context"

	"github.com/Rorical/QuickAct/internal/models"
)

// Clipboard reads and writes the process-wide clipboard text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// AIRequest is the payload handed to the AI gateway. Tone is nil for every
// action other than ToneChange.
type AIRequest struct {
	Text      string
	Action    models.ActionKind
	ModelID   string
	APIKey    string
	BaseURL   string
	Tone      *models.Tone
	MaxTokens int
}

// AI rewrites text. Failures carry a *StatusError or wrap ErrUnreachable.
type AI interface {
	ProcessText(ctx context.Context, req AIRequest) (string, error)
}

// Window hides the overlay. ForceHide is the lower-level primitive tried when Hide fails.
type Window interface {
	Hide() error
	ForceHide() error
}

// Notifier shows a best-effort OS notification.
type Notifier interface {
	Notify(title, body string) error
}

// Settings is the read-through settings store.
type Settings interface {
	RequestSettings() (models.RequestSettings, error)
}
