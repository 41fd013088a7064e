package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("transition", "to", "InFlight")
	logger.Info("dispatching", "action", "proofread")

	out := buf.String()
	assert.NotContains(t, out, "transition")
	assert.Contains(t, out, "dispatching")
	assert.Contains(t, out, "action=proofread")

	buf.Reset()
	New(&buf, true).Debug("transition", "to", "InFlight")
	assert.Contains(t, buf.String(), "to=InFlight")
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	logger, closer, err := Open(path, false)
	require.NoError(t, err)
	logger.Warn("request failed", "kind", "network")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "request failed")
}
