package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/QuickAct/internal/eventbus"
	"github.com/Rorical/QuickAct/internal/models"
	"github.com/Rorical/QuickAct/internal/window"
)

// HandleUpdateWithEventBus applies msg to the UI model. The returned bool is
// false for keys the overlay does not bind, which belong to the input editor.
func HandleUpdateWithEventBus(appModel *models.AppModel, msg tea.Msg, eb *eventbus.EventBus) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if appModel.Hidden {
			return HandleHiddenKeyMsg(appModel, msg, eb), true
		}
		return HandleKeyMsgWithEventBus(appModel, msg, eb)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil, true
	case tea.FocusMsg:
		if !appModel.Hidden {
			sendToCore(appModel, eb, eventbus.FocusEvent{})
		}
		return nil, true
	case window.HiddenMsg:
		appModel.Hidden = true
		appModel.LocalNotice = ""
		return nil, true
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg), true
	}
	return nil, false
}
