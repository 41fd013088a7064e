package components

import (
	"fmt"

	"github.com/Rorical/QuickAct/internal/models"
	"github.com/Rorical/QuickAct/ui/styles"
)

// RenderOutput shows the last result. A proofread result shows its changes
// against the dispatched input while the overlay waits to close.
func RenderOutput(s models.Snapshot, width int) string {
	if s.Result == "" {
		return ""
	}
	body := s.Result
	title := s.ResultFor.Label() + " result"
	if s.ResultFor == models.Proofread && s.ResultInput != "" {
		segments := DiffSegments(s.ResultInput, s.Result)
		body = RenderDiff(s.ResultInput, s.Result)
		title = fmt.Sprintf("%s (%d changes)", title, CountChanges(segments))
	}

	copyHint := styles.MutedStyle().Render("ctrl+y copy")
	if s.Copied {
		copyHint = styles.OKStyle().Render("Copied!")
	}
	header := styles.MutedStyle().Render(title) + "  " + copyHint
	return header + "\n" + styles.OutputStyle(width).Render(body)
}

func RenderError(text, hint string, width int) string {
	if text == "" {
		return ""
	}
	msg := text
	if hint != "" {
		msg += "\n" + hint
	}
	return styles.ErrorStyle(width).Render(msg)
}
