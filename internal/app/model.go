package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/QuickAct/internal/dispatcher"
	"github.com/Rorical/QuickAct/internal/eventbus"
	"github.com/Rorical/QuickAct/internal/models"
	"github.com/Rorical/QuickAct/internal/update"
	"github.com/Rorical/QuickAct/ui/components"
)

const defaultWidth = 80

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	editor     textarea.Model
	spinner    spinner.Model
	inputRev   uint64
}

func NewAppModel(disp *dispatcher.EventDispatcher) *AppModel {
	editor := textarea.New()
	editor.Placeholder = "Select text and copy it, or type here..."
	editor.CharLimit = 0
	editor.ShowLineNumbers = false
	editor.SetWidth(defaultWidth - 6)
	editor.SetHeight(6)
	editor.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &AppModel{
		appModel: models.AppModel{
			Status: "Starting",
			Width:  defaultWidth,
		},
		dispatcher: disp,
		editor:     editor,
		spinner:    sp,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	eventBus := m.dispatcher.GetEventBus()

	switch msg := msg.(type) {
	case update.CoreEventMsg:
		// Handle core events and continue listening
		cmd := update.HandleCoreEvent(&m.appModel, msg)
		m.syncEditor()
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.editor.SetWidth(max(msg.Width-6, 10))
	}

	cmd, handled := update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus)
	if handled || m.appModel.Hidden {
		return m, cmd
	}

	// Everything the overlay does not bind belongs to the editor.
	before := m.editor.Value()
	var editorCmd tea.Cmd
	m.editor, editorCmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		if err := eventBus.SendToCore(eventbus.InputChangedEvent{Text: after}); err != nil {
			m.appModel.LocalNotice = "Error sending input: " + err.Error()
		}
	}
	return m, tea.Batch(cmd, editorCmd)
}

// syncEditor replaces the editor text only when core reloaded it from the
// clipboard, so snapshots that lag behind typing never clobber it.
func (m *AppModel) syncEditor() {
	if m.appModel.Core.InputRev == m.inputRev {
		return
	}
	m.inputRev = m.appModel.Core.InputRev
	m.editor.SetValue(m.appModel.Core.Input)
}

func (m *AppModel) View() string {
	width := m.appModel.Width
	if width <= 0 {
		width = defaultWidth
	}
	if m.appModel.Hidden {
		return components.RenderHidden(m.appModel.Status, width)
	}

	core := m.appModel.Core
	var b strings.Builder
	b.WriteString(components.RenderActionBar(core.Action, core.Tone))
	b.WriteString("\n")
	b.WriteString(components.RenderSettings(core.Settings))
	b.WriteString("\n")
	b.WriteString(components.RenderInput(m.editor.View(), width))
	b.WriteString("\n")
	if e := components.RenderError(core.ErrorText, core.ErrorHint, width); e != "" {
		b.WriteString(e)
		b.WriteString("\n")
	}
	if out := components.RenderOutput(core, width); out != "" {
		b.WriteString(out)
		b.WriteString("\n")
	}
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.LocalNotice, m.spinner.View(),
		core.State == models.InFlight, width))
	b.WriteString("\n")
	b.WriteString(components.RenderHelp(false))

	return b.String()
}
