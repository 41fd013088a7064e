package dispatcher

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Rorical/QuickAct/internal/eventbus"
	"github.com/Rorical/QuickAct/internal/update"
)

// EventDispatcher handles routing events between core and UI
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	logger   *log.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewEventDispatcher(eventBus *eventbus.EventBus, logger *log.Logger) *EventDispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start routes bus failures to the log.
func (ed *EventDispatcher) Start() {
	ed.eventBus.SetErrorCallback(func(e eventbus.EventBusError) {
		ed.logger.Warn("event bus", "op", e.Operation, "err", e.Err,
			"circuit", ed.eventBus.GetCircuitBreakerState())
	})
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}

// ListenForCoreEvents waits for the next core event. The model re-issues it
// after every CoreEventMsg.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	ch := ed.eventBus.CoreToUI()
	return func() tea.Msg {
		select {
		case <-ed.ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return update.CoreEventMsg{Event: event}
		}
	}
}
