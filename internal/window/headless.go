package window

import (
	"fmt"
	"io"
	"sync"
)

// Headless is the window for one-shot runs: hiding only signals Done, and
// notifications are written as plain lines.
type Headless struct {
	out  io.Writer
	once sync.Once
	done chan struct{}
}

func NewHeadless(out io.Writer) *Headless {
	return &Headless{out: out, done: make(chan struct{})}
}

func (h *Headless) Hide() error {
	h.once.Do(func() { close(h.done) })
	return nil
}

func (h *Headless) ForceHide() error {
	return h.Hide()
}

func (h *Headless) Notify(title, body string) error {
	if h.out == nil {
		return nil
	}
	_, err := fmt.Fprintf(h.out, "%s: %s\n", title, body)
	return err
}

// Done is closed the first time the window is hidden.
func (h *Headless) Done() <-chan struct{} {
	return h.done
}
