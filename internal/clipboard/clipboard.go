package clipboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: no clipboard utility available")

// System reads and writes the desktop clipboard. Writes fall back to an
// OSC 52 escape on the terminal when the system clipboard is unavailable.
type System struct {
	read  func() (string, error)
	write func(string) error
	osc52 *termenv.Output
}

// New returns the system clipboard. A nil fallback disables the OSC 52 path.
func New(fallback io.Writer) *System {
	s := &System{
		read:  clipboard.ReadAll,
		write: clipboard.WriteAll,
	}
	if fallback != nil {
		s.osc52 = termenv.NewOutput(fallback)
	}
	return s
}

func (s *System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	text, err := s.read()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

func (s *System) WriteText(text string) error {
	var err error
	if clipboard.Unsupported {
		err = ErrUnsupported
	} else {
		err = s.write(text)
	}
	if err == nil {
		return nil
	}
	if s.osc52 == nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	s.osc52.Copy(text)
	return nil
}
