package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Rorical/QuickAct/internal/ai"
	"github.com/Rorical/QuickAct/internal/clipboard"
	"github.com/Rorical/QuickAct/internal/config"
	"github.com/Rorical/QuickAct/internal/core"
	"github.com/Rorical/QuickAct/internal/dispatcher"
	"github.com/Rorical/QuickAct/internal/eventbus"
	"github.com/Rorical/QuickAct/internal/logging"
	"github.com/Rorical/QuickAct/internal/window"
)

// Options carries the resolved command line and environment settings.
type Options struct {
	Overrides     config.Overrides
	GracePeriod   time.Duration
	Debug         bool
	LogFile       string
	Notifications bool
}

// Application manages the complete application lifecycle
type Application struct {
	store      *config.Store
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.QuickActionService
	window     *window.Terminal
	model      *AppModel
	logger     *log.Logger
	logCloser  io.Closer
}

func NewApplication(opts Options) (*Application, error) {
	store, err := config.NewStore(opts.Overrides)
	if err != nil {
		return nil, err
	}
	// Creates the default profile on first run.
	cfg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logPath := opts.LogFile
	if logPath == "" {
		logPath = filepath.Join(cfg.Dir(), logging.FileName)
	}
	logger, logCloser, err := logging.Open(logPath, opts.Debug)
	if err != nil {
		return nil, err
	}
	logger.Info("starting", "profile", cfg.ActiveProfile, "config", store.Path(), "grace", opts.GracePeriod)

	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb, logger)
	term := window.NewTerminal(os.Stdout, opts.Notifications)

	service := core.NewQuickActionService(core.Deps{
		Clipboard: clipboard.New(os.Stdout),
		AI:        ai.NewClient(),
		Window:    term,
		Notifier:  term,
		Settings:  store,
	}, eb, logger, core.WithGracePeriod(opts.GracePeriod))

	return &Application{
		store:      store,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		window:     term,
		model:      NewAppModel(disp),
		logger:     logger,
		logCloser:  logCloser,
	}, nil
}

// Start runs the overlay until the user quits. The overlay opens immediately,
// as if the shortcut had just been pressed.
func (app *Application) Start() error {
	app.dispatcher.Start()
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen(), tea.WithReportFocus())
	app.window.Attach(p)
	defer app.window.Detach()

	if err := app.eventBus.SendToCore(eventbus.ShowEvent{}); err != nil {
		app.logger.Error("initial show failed", "err", err)
	}

	_, err := p.Run()
	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	app.logger.Info("stopped")
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
}
