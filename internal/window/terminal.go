package window

import (
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

// HiddenMsg tells the overlay program to collapse to its idle line.
type HiddenMsg struct{}

var (
	ErrDetached              = errors.New("window: no program attached")
	ErrNotificationsDisabled = errors.New("window: notifications disabled")
)

// Terminal is the window controller and notifier for the overlay program.
type Terminal struct {
	mu            sync.Mutex
	program       *tea.Program
	out           *termenv.Output
	notifications bool
}

func NewTerminal(w io.Writer, notifications bool) *Terminal {
	return &Terminal{
		out:           termenv.NewOutput(w),
		notifications: notifications,
	}
}

// Attach binds the running program that Hide collapses.
func (t *Terminal) Attach(p *tea.Program) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.program = p
}

func (t *Terminal) Detach() {
	t.Attach(nil)
}

// Hide asks the program to collapse. It does not wait for the redraw.
func (t *Terminal) Hide() error {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()
	if p == nil {
		return ErrDetached
	}
	p.Send(HiddenMsg{})
	return nil
}

// ForceHide wipes the screen directly, for when the program cannot be reached.
func (t *Terminal) ForceHide() error {
	t.out.ClearScreen()
	return nil
}

// Notify emits an OSC 777 desktop notification.
func (t *Terminal) Notify(title, body string) error {
	if !t.notifications {
		return ErrNotificationsDisabled
	}
	t.out.Notify(title, body)
	return nil
}
