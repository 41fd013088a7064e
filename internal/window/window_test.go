package window

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHideRequiresProgram(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, true)
	assert.ErrorIs(t, term.Hide(), ErrDetached)
}

func TestTerminalForceHideClearsScreen(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, true)

	require.NoError(t, term.ForceHide())
	assert.Contains(t, buf.String(), "[2J")
}

func TestTerminalNotify(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, true)

	require.NoError(t, term.Notify("Proofread Complete", "Text ready to paste"))
	assert.Contains(t, buf.String(), "777;notify;Proofread Complete;Text ready to paste")

	buf.Reset()
	term = NewTerminal(&buf, false)
	assert.ErrorIs(t, term.Notify("Draft Ready", "Text ready to paste"), ErrNotificationsDisabled)
	assert.Empty(t, buf.String())
}

func TestHeadless(t *testing.T) {
	var buf bytes.Buffer
	h := NewHeadless(&buf)

	select {
	case <-h.Done():
		t.Fatal("done before hide")
	default:
	}

	require.NoError(t, h.Hide())
	require.NoError(t, h.ForceHide())
	<-h.Done()

	require.NoError(t, h.Notify("Tone Changed", "Text ready to paste"))
	assert.Equal(t, "Tone Changed: Text ready to paste\n", buf.String())
}
