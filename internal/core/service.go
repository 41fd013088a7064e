package core

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Rorical/QuickAct/internal/eventbus"
	"github.com/Rorical/QuickAct/internal/models"
)

// QuickActionService connects the UI side of the event bus to a Controller.
// UI events are handled one at a time on the service goroutine; snapshots
// flow back as StateUpdateEvents.
type QuickActionService struct {
	controller *Controller
	eventBus   *eventbus.EventBus
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewQuickActionService builds the controller for deps and registers the
// service as its snapshot listener. Any WithListener in opts is overridden.
func NewQuickActionService(deps Deps, eb *eventbus.EventBus, logger *log.Logger, opts ...Option) *QuickActionService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &QuickActionService{
		eventBus: eb,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	opts = append(opts, WithLogger(logger), WithListener(s.pushState))
	s.controller = NewController(deps, opts...)
	return s
}

func (s *QuickActionService) Controller() *Controller {
	return s.controller
}

// Start runs the core logic in a goroutine
func (s *QuickActionService) Start() {
	s.pushState(s.controller.Snapshot())
	go s.eventLoop()
}

// Stop cancels any request in flight and waits for the event loop to exit.
func (s *QuickActionService) Stop() {
	s.cancel()
	<-s.done
}

func (s *QuickActionService) eventLoop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *QuickActionService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.ShowEvent:
		s.controller.Show()
	case eventbus.HideEvent:
		s.controller.Hidden()
	case eventbus.FocusEvent:
		s.controller.Focus()
	case eventbus.InputChangedEvent:
		s.controller.SetInput(e.Text)
	case eventbus.SelectActionEvent:
		if err := s.controller.SelectAction(e.Action); err != nil {
			s.notice(err.Error())
		}
	case eventbus.SelectToneEvent:
		if err := s.controller.SelectTone(e.Tone); err != nil {
			s.notice(err.Error())
		}
	case eventbus.SendEvent:
		s.send()
	case eventbus.CopyEvent:
		err := s.controller.Copy()
		if errors.Is(err, ErrNoResult) {
			s.notice("Nothing to copy yet")
		}
	default:
		s.logger.Warn("unhandled UI event", "event", event)
	}
}

func (s *QuickActionService) send() {
	err := s.controller.Send(s.ctx)
	var aerr *ActionError
	switch {
	case err == nil:
	case errors.Is(err, ErrBusy):
		s.notice("Still working on the last request")
	case errors.Is(err, ErrHidden):
		s.logger.Debug("send while hidden ignored")
	case errors.As(err, &aerr):
		// Already part of the published snapshot.
	default:
		s.logger.Error("send failed", "err", err)
	}
}

func (s *QuickActionService) pushState(snap models.Snapshot) {
	if err := s.eventBus.SendToUI(eventbus.StateUpdateEvent{Snapshot: snap}); err != nil {
		s.logger.Error("sending state to UI failed", "seq", snap.Seq, "err", err)
	}
}

func (s *QuickActionService) notice(text string) {
	if err := s.eventBus.SendToUI(eventbus.NoticeEvent{Text: text}); err != nil {
		s.logger.Error("sending notice to UI failed", "err", err)
	}
}
