package models

import "time"

// DispatchState is the controller's own state. One per controller instance.
type DispatchState int

const (
	Idle DispatchState = iota
	AwaitingInput
	InFlight
	Succeeded
	Failed
)

func (s DispatchState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case AwaitingInput:
		return "AwaitingInput"
	case InFlight:
		return "InFlight"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// RequestSettings is the settings snapshot read from the store at dispatch time.
// The controller never mutates it.
type RequestSettings struct {
	APIKey           string
	BaseURL          string
	ModelID          string
	MaxTokens        int
	AutoCloseEnabled bool
	DefaultTone      Tone
}

// PendingRequest exists only while a request is in flight.
type PendingRequest struct {
	ID           string
	InputText    string
	Action       ActionKind
	Tone         *Tone // nil unless Action == ToneChange
	Settings     RequestSettings
	Generation   uint64
	DispatchedAt time.Time
}

// Outcome is the result of one request, retained only until the result policy consumes it.
type Outcome struct {
	ResultText string
	Err        error
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// SettingsSummary is what the overlay shows about the active settings.
type SettingsSummary struct {
	APIKeySet bool
	ModelID   string
	AutoClose bool
}

// Snapshot is an immutable view of the controller pushed to the UI after every transition.
type Snapshot struct {
	Seq         uint64
	Generation  uint64
	State       DispatchState
	Visible     bool
	Input       string
	InputRev    uint64 // bumped only when the input was reloaded from the clipboard
	Action      ActionKind
	Tone        Tone
	Result      string
	ResultInput string // input the displayed result was produced from
	ResultFor   ActionKind
	ErrorText   string
	ErrorHint   string
	Copied      bool
	HidePending bool
	Settings    SettingsSummary
}

// CanSend reports whether the send control should be enabled.
func (s Snapshot) CanSend() bool {
	return s.Visible && s.State == AwaitingInput
}
