package components

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"

	"github.com/Rorical/QuickAct/internal/models"
)

func TestDiffSegments(t *testing.T) {
	segments := DiffSegments("I has a cat", "I have a cat")

	var inserted, deleted, equal strings.Builder
	for _, s := range segments {
		switch s.Type {
		case diffmatchpatch.DiffInsert:
			inserted.WriteString(s.Text)
		case diffmatchpatch.DiffDelete:
			deleted.WriteString(s.Text)
		default:
			equal.WriteString(s.Text)
		}
	}
	assert.Contains(t, equal.String(), " a cat")
	assert.NotEmpty(t, inserted.String())
	assert.NotEmpty(t, deleted.String())
	assert.Equal(t, 1, CountChanges(segments))
}

func TestCountChangesNoDifference(t *testing.T) {
	assert.Zero(t, CountChanges(DiffSegments("same", "same")))
}

func TestRenderOutput(t *testing.T) {
	assert.Empty(t, RenderOutput(models.Snapshot{}, 60))

	out := RenderOutput(models.Snapshot{
		Result:      "I have a cat",
		ResultInput: "I has a cat",
		ResultFor:   models.Proofread,
	}, 60)
	assert.Contains(t, out, "Proofread result (1 changes)")
	assert.Contains(t, out, "ctrl+y copy")

	out = RenderOutput(models.Snapshot{
		Result:    "Dear team,",
		ResultFor: models.Draft,
		Copied:    true,
	}, 60)
	assert.Contains(t, out, "Draft result")
	assert.Contains(t, out, "Dear team,")
	assert.Contains(t, out, "Copied!")
}

func TestRenderActionBar(t *testing.T) {
	bar := RenderActionBar(models.Proofread, models.Casual)
	assert.Contains(t, bar, "Proofread")
	assert.NotContains(t, bar, "Tone:")

	bar = RenderActionBar(models.ToneChange, models.Casual)
	assert.Contains(t, bar, "Tone:")
	assert.Contains(t, bar, models.Casual.Label())
}

func TestRenderSettings(t *testing.T) {
	line := RenderSettings(models.SettingsSummary{})
	assert.Contains(t, line, "Not set")
	assert.Contains(t, line, "Not selected")

	line = RenderSettings(models.SettingsSummary{APIKeySet: true, ModelID: "openai/gpt-4o-mini", AutoClose: true})
	assert.Contains(t, line, "openai/gpt-4o-mini")
	assert.Contains(t, line, "Auto-close: on")
}

func TestRenderError(t *testing.T) {
	assert.Empty(t, RenderError("", "hint", 40))
	out := RenderError("Invalid API key format.", "Keys start with sk-or-v1-", 60)
	assert.Contains(t, out, "Invalid API key format.")
	assert.Contains(t, out, "sk-or-v1-")
}
