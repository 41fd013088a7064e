package ai

import (
	"fmt"

	"github.com/Rorical/QuickAct/internal/models"
)

const (
	proofreadPrompt = "You are a professional editor. Please proofread and correct the following text for grammar, spelling, punctuation, and clarity. Return only the corrected text without additional commentary."
	tonePrompt      = "You are a writing assistant. Please rewrite the following text in a %s tone. Maintain the original meaning but adjust the style and language to match the requested tone. Return only the rewritten text without additional commentary."
	draftPrompt     = "You are a helpful writing assistant. Please help improve and expand the following text to make it more complete, clear, and professional. Return only the improved text without additional commentary."
)

// SystemPrompt returns the instruction sent ahead of the user's text.
func SystemPrompt(action models.ActionKind, tone *models.Tone) (string, error) {
	switch action {
	case models.Proofread:
		return proofreadPrompt, nil
	case models.ToneChange:
		t := models.DefaultTone
		if tone != nil && *tone != "" {
			t = *tone
		}
		return fmt.Sprintf(tonePrompt, t), nil
	case models.Draft:
		return draftPrompt, nil
	}
	return "", fmt.Errorf("unknown action %d", int(action))
}
