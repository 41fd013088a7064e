package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/QuickAct/internal/models"
	"github.com/Rorical/QuickAct/ui/styles"
)

// RenderActionBar shows the three actions with the selected one highlighted,
// followed by the tone picker when ToneChange is selected.
func RenderActionBar(action models.ActionKind, tone models.Tone) string {
	tabs := make([]string, 0, len(models.Actions())+1)
	tabs = append(tabs, styles.TitleStyle().Render("QuickAct"))
	for _, a := range models.Actions() {
		tabs = append(tabs, styles.TabStyle(a == action).Render(a.Label()))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if action == models.ToneChange {
		bar += "\n" + RenderTonePicker(tone)
	}
	return bar
}

func RenderTonePicker(selected models.Tone) string {
	var b strings.Builder
	b.WriteString(styles.MutedStyle().Render(" Tone:"))
	for _, t := range models.Tones() {
		b.WriteString(" ")
		if t == selected {
			b.WriteString(styles.TabStyle(true).Render(t.Label()))
		} else {
			b.WriteString(styles.MutedStyle().Render(t.Label()))
		}
	}
	return b.String()
}

// RenderSettings summarises whether the overlay can dispatch at all.
func RenderSettings(s models.SettingsSummary) string {
	key := styles.WarnStyle().Render("Not set")
	if s.APIKeySet {
		key = styles.OKStyle().Render("Set")
	}
	model := styles.WarnStyle().Render("Not selected")
	if s.ModelID != "" {
		model = styles.OKStyle().Render(s.ModelID)
	}
	line := styles.MutedStyle().Render(" API Key: ") + key + styles.MutedStyle().Render("  Model: ") + model
	if s.AutoClose {
		line += styles.MutedStyle().Render("  Auto-close: on")
	}
	return line
}
