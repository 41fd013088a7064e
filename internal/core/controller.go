package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Rorical/QuickAct/internal/config"
	"github.com/Rorical/QuickAct/internal/gateway"
	"github.com/Rorical/QuickAct/internal/models"
)

const (
	DefaultGracePeriod    = 2 * time.Second
	DefaultCopiedAck      = 2 * time.Second
	DefaultRequestTimeout = 60 * time.Second

	NotificationBody = "Text ready to paste"

	copyFailedMessage = "Could not copy the result to the clipboard."
)

// ErrNoResult is returned by Copy when there is no result to copy.
var ErrNoResult = errors.New("no result to copy")

// Deps are the collaborators the controller drives. Window and Notifier may be nil.
type Deps struct {
	Clipboard gateway.Clipboard
	AI        gateway.AI
	Window    gateway.Window
	Notifier  gateway.Notifier
	Settings  gateway.Settings
}

// Listener receives every published snapshot, in sequence order.
// It must not call back into the controller.
type Listener func(models.Snapshot)

type Option func(*Controller)

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithGracePeriod(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.grace = d
		}
	}
}

func WithCopiedAck(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.copiedAck = d
		}
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithKeyPrefix sets the provider key prefix checked before dispatch. Empty disables the check.
func WithKeyPrefix(prefix string) Option {
	return func(c *Controller) { c.keyPrefix = prefix }
}

// WithRunner replaces the goroutine used for the AI call.
func WithRunner(run func(func())) Option {
	return func(c *Controller) { c.run = run }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

// Controller is the quick-action dispatch state machine. It owns clipboard
// intake, action selection, the single outstanding AI request and the
// post-result window policy.
type Controller struct {
	mu sync.Mutex
	st *cycleState

	emitMu sync.Mutex
	outbox []models.Snapshot

	deps      Deps
	clock     Clock
	grace     time.Duration
	copiedAck time.Duration
	timeout   time.Duration
	keyPrefix string
	run       func(func())
	logger    *log.Logger
	listener  Listener
}

func NewController(deps Deps, opts ...Option) *Controller {
	c := &Controller{
		st:        newCycleState(),
		deps:      deps,
		clock:     realClock{},
		grace:     DefaultGracePeriod,
		copiedAck: DefaultCopiedAck,
		timeout:   DefaultRequestTimeout,
		keyPrefix: config.DefaultKeyPrefix,
		run:       func(f func()) { go f() },
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current view without publishing it.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.view()
}

// Show handles the overlay becoming visible: a fresh cycle with a fresh clipboard load.
func (c *Controller) Show() {
	c.mu.Lock()
	gen := c.st.advance()
	c.st.visible = true
	c.st.hidePending = false
	c.st.clearResult()
	c.refreshSummaryLocked(true)
	if c.st.pending == nil {
		c.setStateLocked(models.Idle)
	} else {
		c.logger.Debug("shown while in flight, late result will be discarded", "generation", gen)
		c.publishLocked()
	}

	c.intakeLocked("show")
	if c.st.pending == nil {
		c.setStateLocked(models.AwaitingInput)
	} else {
		c.publishLocked()
	}
	c.mu.Unlock()
	c.flush()
}

// Hidden records that the user hid the overlay.
func (c *Controller) Hidden() {
	c.mu.Lock()
	c.st.visible = false
	if c.st.pending == nil {
		c.setStateLocked(models.Idle)
	} else {
		c.publishLocked()
	}
	c.mu.Unlock()
	c.flush()
}

// Focus reloads the clipboard on a foreground-focus event, except while an
// auto-hide is pending or a request is in flight.
func (c *Controller) Focus() {
	c.mu.Lock()
	switch {
	case !c.st.visible:
		c.logger.Debug("focus ignored", "reason", "hidden")
	case c.st.hidePending:
		c.logger.Debug("focus ignored", "reason", "auto-hide pending", "generation", c.st.generation)
	case c.st.pending != nil:
		c.logger.Debug("focus ignored", "reason", "in flight")
	default:
		c.intakeLocked("focus")
		c.publishLocked()
	}
	c.mu.Unlock()
	c.flush()
}

func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.st.input = text
	c.publishLocked()
	c.mu.Unlock()
	c.flush()
}

// SelectAction changes the selected action. Changing it while a request is in
// flight advances the generation, so that request's late result is discarded.
func (c *Controller) SelectAction(action models.ActionKind) error {
	if !action.Valid() {
		return fmt.Errorf("invalid action %d", int(action))
	}
	c.mu.Lock()
	if action != c.st.action && c.st.pending != nil {
		gen := c.st.advance()
		c.logger.Debug("action changed while in flight, discarding late result",
			"request", c.st.pending.ID, "generation", gen)
	}
	c.st.action = action
	c.publishLocked()
	c.mu.Unlock()
	c.flush()
	return nil
}

func (c *Controller) SelectTone(tone models.Tone) error {
	if !tone.Valid() {
		return fmt.Errorf("invalid tone %q", tone)
	}
	c.mu.Lock()
	c.st.tone = tone
	c.publishLocked()
	c.mu.Unlock()
	c.flush()
	return nil
}

// Send dispatches the current input. It returns ErrHidden or ErrBusy when the
// overlay cannot dispatch right now, and an *ActionError of kind
// ValidationError when a guard fails; in that case no request is made.
func (c *Controller) Send(ctx context.Context) error {
	c.mu.Lock()
	if !c.st.visible {
		c.mu.Unlock()
		return ErrHidden
	}
	if c.st.pending != nil || c.st.state != models.AwaitingInput {
		state := c.st.state
		c.mu.Unlock()
		c.logger.Debug("send ignored", "state", state)
		return ErrBusy
	}

	text := strings.TrimSpace(c.st.input)
	var settings models.RequestSettings
	aerr := c.validateInput(text)
	if aerr == nil {
		var err error
		settings, err = c.deps.Settings.RequestSettings()
		if err != nil {
			aerr = &ActionError{
				Kind:    ValidationError,
				Message: "Could not read settings.",
				Hint:    "Check your config file.",
				Detail:  err.Error(),
				Err:     err,
			}
		} else {
			aerr = c.validateSettings(settings)
			c.applySummaryLocked(settings)
		}
	}
	if aerr != nil {
		c.st.lastErr = aerr
		c.logger.Info("dispatch rejected", "kind", aerr.Kind, "reason", aerr.Message)
		c.publishLocked()
		c.mu.Unlock()
		c.flush()
		return aerr
	}

	req := models.PendingRequest{
		ID:           uuid.NewString(),
		InputText:    text,
		Action:       c.st.action,
		Settings:     settings,
		Generation:   c.st.advance(),
		DispatchedAt: c.clock.Now(),
	}
	if req.Action == models.ToneChange {
		tone := c.st.tone
		req.Tone = &tone
	}
	c.st.lastErr = nil
	c.st.result = ""
	c.st.resultInput = ""
	c.st.copied = false
	c.st.pending = &req
	c.setStateLocked(models.InFlight)
	c.logger.Info("dispatching", "request", req.ID, "action", req.Action, "model", settings.ModelID,
		"max_tokens", settings.MaxTokens, "generation", req.Generation)
	c.mu.Unlock()
	c.flush()

	c.run(func() { c.execute(ctx, req) })
	return nil
}

func (c *Controller) validateInput(text string) *ActionError {
	if text == "" {
		return validationError("Please enter some text to process.", "Select text and copy it, or type it in.")
	}
	return nil
}

func (c *Controller) validateSettings(s models.RequestSettings) *ActionError {
	switch {
	case s.ModelID == "":
		return validationError("Please select a model in settings first.", "Run: quickact models --select")
	case s.APIKey == "":
		return validationError("Please set your OpenRouter API key in settings first.", "Run: quickact profile edit")
	case c.keyPrefix != "" && !strings.HasPrefix(s.APIKey, c.keyPrefix):
		return validationError("Invalid API key format.",
			fmt.Sprintf("OpenRouter API keys should start with %q.", c.keyPrefix))
	}
	return nil
}

func (c *Controller) execute(ctx context.Context, req models.PendingRequest) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.deps.AI.ProcessText(ctx, gateway.AIRequest{
		Text:      req.InputText,
		Action:    req.Action,
		ModelID:   req.Settings.ModelID,
		APIKey:    req.Settings.APIKey,
		BaseURL:   req.Settings.BaseURL,
		Tone:      req.Tone,
		MaxTokens: req.Settings.MaxTokens,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("no content in AI response")
	}
	c.complete(req, models.Outcome{ResultText: text, Err: err})
}

// complete applies the result policy for req unless its generation is stale.
func (c *Controller) complete(req models.PendingRequest, outcome models.Outcome) {
	c.mu.Lock()
	elapsed := c.clock.Now().Sub(req.DispatchedAt)
	if c.st.pending != nil && c.st.pending.ID == req.ID {
		c.st.pending = nil
	}

	if req.Generation != c.st.generation {
		c.logger.Debug("discarding stale result", "request", req.ID,
			"request_generation", req.Generation, "generation", c.st.generation)
		if c.st.state == models.InFlight {
			c.setStateLocked(c.st.restState())
		}
		c.mu.Unlock()
		c.flush()
		return
	}

	if !outcome.Succeeded() {
		aerr := Classify(outcome.Err)
		c.logger.Warn("request failed", "request", req.ID, "kind", aerr.Kind, "elapsed", elapsed, "err", outcome.Err)
		c.st.lastErr = aerr
		c.setStateLocked(models.Failed)
		c.setStateLocked(c.st.restState())
		visible := c.st.visible
		c.mu.Unlock()
		c.flush()
		if !visible {
			c.notify(req.Action.Label()+" failed", aerr.Message)
		}
		return
	}

	c.logger.Info("request succeeded", "request", req.ID, "action", req.Action, "elapsed", elapsed)
	c.st.result = outcome.ResultText
	c.st.resultInput = req.InputText
	c.st.resultFor = req.Action
	c.setStateLocked(models.Succeeded)

	copiedOK := true
	if err := c.deps.Clipboard.WriteText(outcome.ResultText); err != nil {
		copiedOK = false
		c.logger.Warn("writing result to clipboard failed", "request", req.ID, "err", err)
		c.st.lastErr = copyFailed(err)
	}

	if copiedOK && (req.Action == models.Proofread || req.Settings.AutoCloseEnabled) {
		gen := c.st.generation
		title := notificationTitle(req.Action)
		c.st.hidePending = true
		c.clock.AfterFunc(c.grace, func() { c.graceElapsed(gen, title) })
		c.publishLocked()
	} else {
		c.setStateLocked(c.st.restState())
	}
	c.mu.Unlock()
	c.flush()
}

// graceElapsed hides the overlay once the grace period is over, unless the
// cycle it was scheduled for has been superseded.
func (c *Controller) graceElapsed(gen uint64, title string) {
	c.mu.Lock()
	if gen != c.st.generation || !c.st.hidePending {
		c.logger.Debug("auto-hide superseded", "timer_generation", gen, "generation", c.st.generation)
		c.mu.Unlock()
		return
	}
	c.st.hidePending = false
	if c.st.state == models.Succeeded {
		c.setStateLocked(models.AwaitingInput)
	}
	c.hideLocked()
	c.st.visible = false
	c.setStateLocked(models.Idle)
	c.mu.Unlock()
	c.flush()

	c.notify(title, NotificationBody)
}

// Copy writes the last result to the clipboard again and re-arms the copied acknowledgement.
func (c *Controller) Copy() error {
	c.mu.Lock()
	if c.st.result == "" {
		c.mu.Unlock()
		return ErrNoResult
	}
	if err := c.deps.Clipboard.WriteText(c.st.result); err != nil {
		c.logger.Warn("manual copy failed", "err", err)
		aerr := copyFailed(err)
		c.st.lastErr = aerr
		c.publishLocked()
		c.mu.Unlock()
		c.flush()
		return aerr
	}
	if c.st.lastErr != nil && c.st.lastErr.Message == copyFailedMessage {
		c.st.lastErr = nil
	}
	c.st.copied = true
	c.st.copySeq++
	seq := c.st.copySeq
	c.clock.AfterFunc(c.copiedAck, func() { c.clearCopied(seq) })
	c.publishLocked()
	c.mu.Unlock()
	c.flush()
	return nil
}

func (c *Controller) clearCopied(seq uint64) {
	c.mu.Lock()
	if seq != c.st.copySeq || !c.st.copied {
		c.mu.Unlock()
		return
	}
	c.st.copied = false
	c.publishLocked()
	c.mu.Unlock()
	c.flush()
}

func (c *Controller) intakeLocked(reason string) {
	text, err := c.deps.Clipboard.ReadText()
	if err != nil {
		c.logger.Debug("clipboard read failed, starting empty", "reason", reason, "err", err)
		text = ""
	}
	c.st.input = text
	c.st.inputRev++
}

// hideLocked tries the window's hide first and its lower-level fallback second.
func (c *Controller) hideLocked() {
	if c.deps.Window == nil {
		return
	}
	err := c.deps.Window.Hide()
	if err == nil {
		return
	}
	c.logger.Debug("hide failed, trying fallback", "err", err)
	if err := c.deps.Window.ForceHide(); err != nil {
		c.logger.Warn("fallback hide failed", "err", err)
	}
}

func (c *Controller) notify(title, body string) {
	if c.deps.Notifier == nil {
		return
	}
	if err := c.deps.Notifier.Notify(title, body); err != nil {
		c.logger.Debug("notification unavailable", "err", err)
	}
}

func (c *Controller) refreshSummaryLocked(resetTone bool) {
	if c.deps.Settings == nil {
		return
	}
	settings, err := c.deps.Settings.RequestSettings()
	if err != nil {
		c.logger.Warn("reading settings failed", "err", err)
		return
	}
	c.applySummaryLocked(settings)
	if resetTone && c.st.pending == nil {
		c.st.tone = settings.DefaultTone
		if !c.st.tone.Valid() {
			c.st.tone = models.DefaultTone
		}
	}
}

func (c *Controller) applySummaryLocked(s models.RequestSettings) {
	c.st.summary = models.SettingsSummary{
		APIKeySet: s.APIKey != "",
		ModelID:   s.ModelID,
		AutoClose: s.AutoCloseEnabled,
	}
}

func (c *Controller) setStateLocked(to models.DispatchState) {
	from := c.st.state
	c.st.state = to
	if from != to {
		c.logger.Debug("transition", "from", from, "to", to, "generation", c.st.generation)
	}
	c.publishLocked()
}

func (c *Controller) publishLocked() {
	c.outbox = append(c.outbox, c.st.snapshot())
}

// flush delivers queued snapshots outside c.mu, keeping sequence order
// across goroutines.
func (c *Controller) flush() {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	snaps := c.outbox
	c.outbox = nil
	c.mu.Unlock()

	if c.listener == nil {
		return
	}
	for _, snap := range snaps {
		c.listener(snap)
	}
}

func copyFailed(err error) *ActionError {
	return &ActionError{
		Kind:    UnknownError,
		Message: copyFailedMessage,
		Hint:    "Use the copy button to try again.",
		Detail:  err.Error(),
		Err:     err,
	}
}

func notificationTitle(action models.ActionKind) string {
	switch action {
	case models.Proofread:
		return "Proofread Complete"
	case models.ToneChange:
		return "Tone Changed"
	case models.Draft:
		return "Draft Ready"
	default:
		return "QuickAct"
	}
}
