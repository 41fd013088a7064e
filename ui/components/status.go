package components

import (
	"github.com/Rorical/QuickAct/ui/styles"
)

// RenderStatus renders the bottom bar. spinner is shown while a request is in flight.
func RenderStatus(status, notice, spinner string, loading bool, width int) string {
	statusContent := status
	if loading {
		statusContent = spinner + " " + statusContent
	}
	if notice != "" {
		statusContent += " | " + notice
	}
	return styles.StatusStyle(width).Render(statusContent)
}

func RenderHelp(hidden bool) string {
	if hidden {
		return styles.HelpStyle().Render("space open | q quit")
	}
	return styles.HelpStyle().Render("tab action | ctrl+t tone | ctrl+s send | ctrl+y copy | esc hide | ctrl+c quit")
}

// RenderHidden is the collapsed overlay.
func RenderHidden(status string, width int) string {
	return styles.StatusStyle(width).Render("QuickAct hidden | "+status) + "\n" + RenderHelp(true)
}
