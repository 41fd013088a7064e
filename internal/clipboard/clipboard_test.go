package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeSystem(fallback *bytes.Buffer) (*System, *string) {
	var content string
	s := New(nil)
	if fallback != nil {
		s = New(fallback)
	}
	s.read = func() (string, error) { return content, nil }
	s.write = func(text string) error {
		content = text
		return nil
	}
	return s, &content
}

func TestReadWrite(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility on this machine")
	}
	s, content := fakeSystem(nil)

	require.NoError(t, s.WriteText("Hello."))
	assert.Equal(t, "Hello.", *content)

	got, err := s.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "Hello.", got)
}

func TestReadErrorIsWrapped(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility on this machine")
	}
	s, _ := fakeSystem(nil)
	boom := errors.New("xsel exited 1")
	s.read = func() (string, error) { return "", boom }

	_, err := s.ReadText()
	assert.ErrorIs(t, err, boom)
}

func TestWriteFallsBackToOSC52(t *testing.T) {
	var buf bytes.Buffer
	s, _ := fakeSystem(&buf)
	s.write = func(string) error { return errors.New("no display") }

	require.NoError(t, s.WriteText("Done."))
	assert.Contains(t, buf.String(), base64.StdEncoding.EncodeToString([]byte("Done.")))
}

func TestWriteWithoutFallbackFails(t *testing.T) {
	s, _ := fakeSystem(nil)
	s.write = func(string) error { return errors.New("no display") }

	assert.Error(t, s.WriteText("Done."))
}
