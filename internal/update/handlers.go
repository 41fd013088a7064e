package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/QuickAct/internal/eventbus"
	"github.com/Rorical/QuickAct/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input while the overlay is open
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) (tea.Cmd, bool) {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		// Collapse locally; core only records it.
		appModel.Hidden = true
		appModel.LocalNotice = ""
		sendToCore(appModel, eb, eventbus.HideEvent{})
	case "tab":
		sendToCore(appModel, eb, eventbus.SelectActionEvent{Action: appModel.Core.Action.Next()})
	case "ctrl+t":
		sendToCore(appModel, eb, eventbus.SelectToneEvent{Tone: appModel.Core.Tone.Next()})
	case "ctrl+s":
		if !appModel.Core.CanSend() {
			appModel.LocalNotice = "Wait for the current request to finish"
			return nil, true
		}
		appModel.LocalNotice = ""
		sendToCore(appModel, eb, eventbus.SendEvent{})
	case "ctrl+y":
		sendToCore(appModel, eb, eventbus.CopyEvent{})
	default:
		return nil, false
	}
	return nil, true
}

// HandleHiddenKeyMsg handles the collapsed overlay, where the open key stands
// in for the global shortcut.
func HandleHiddenKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case " ", "enter", "o":
		appModel.Hidden = false
		appModel.LocalNotice = ""
		sendToCore(appModel, eb, eventbus.ShowEvent{})
	}
	return nil
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core. Snapshots older than the
// one already applied are dropped.
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		if event.Snapshot.Seq != 0 && event.Snapshot.Seq <= appModel.Core.Seq {
			return nil
		}
		appModel.ServiceUp = true
		appModel.Core = event.Snapshot
		appModel.Status = StatusText(event.Snapshot)
	case eventbus.NoticeEvent:
		appModel.LocalNotice = event.Text
	}
	return nil
}

// StatusText is the status bar line for a snapshot.
func StatusText(s models.Snapshot) string {
	switch s.State {
	case models.InFlight:
		return fmt.Sprintf("%s in progress", s.Action.Label())
	case models.Succeeded:
		if s.HidePending {
			return "Copied to clipboard, closing"
		}
		return "Copied to clipboard"
	case models.Failed:
		return "Request failed"
	case models.AwaitingInput:
		switch {
		case s.ErrorText != "":
			return "Error"
		case s.Copied:
			return "Copied!"
		case s.Result != "":
			return "Result ready"
		}
		return "Ready"
	}
	return "Idle"
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func sendToCore(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) {
	if err := eb.SendToCore(event); err != nil {
		appModel.LocalNotice = "Error sending event: " + err.Error()
	}
}
