package core

import (
	"github.com/Rorical/QuickAct/internal/models"
)

// cycleState is the dispatch cycle owned by one Controller.
// Every field is guarded by Controller.mu.
type cycleState struct {
	state      models.DispatchState
	generation uint64
	visible    bool

	input    string
	inputRev uint64
	action   models.ActionKind
	tone     models.Tone

	pending *models.PendingRequest

	result      string
	resultInput string
	resultFor   models.ActionKind
	lastErr     *ActionError

	copied  bool
	copySeq uint64

	hidePending bool
	summary     models.SettingsSummary

	seq uint64
}

func newCycleState() *cycleState {
	return &cycleState{
		state:  models.Idle,
		action: models.Proofread,
		tone:   models.DefaultTone,
	}
}

// advance starts a new generation. Timers and request completions captured
// under an older generation become no-ops.
func (s *cycleState) advance() uint64 {
	s.generation++
	return s.generation
}

func (s *cycleState) clearResult() {
	s.result = ""
	s.resultInput = ""
	s.lastErr = nil
	s.copied = false
	s.copySeq++
}

// restState is where a cycle settles once nothing is in flight.
func (s *cycleState) restState() models.DispatchState {
	if s.visible {
		return models.AwaitingInput
	}
	return models.Idle
}

func (s *cycleState) view() models.Snapshot {
	snap := models.Snapshot{
		Seq:         s.seq,
		Generation:  s.generation,
		State:       s.state,
		Visible:     s.visible,
		Input:       s.input,
		InputRev:    s.inputRev,
		Action:      s.action,
		Tone:        s.tone,
		Result:      s.result,
		ResultInput: s.resultInput,
		ResultFor:   s.resultFor,
		Copied:      s.copied,
		HidePending: s.hidePending,
		Settings:    s.summary,
	}
	if s.lastErr != nil {
		snap.ErrorText = s.lastErr.Message
		snap.ErrorHint = s.lastErr.Hint
	}
	return snap
}

// snapshot bumps the sequence number and returns the published view.
func (s *cycleState) snapshot() models.Snapshot {
	s.seq++
	return s.view()
}
