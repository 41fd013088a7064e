package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := map[string]ActionKind{
		"proofread":   Proofread,
		" Proofread ": Proofread,
		"tone":        ToneChange,
		"Change Tone": ToneChange,
		"tone-change": ToneChange,
		"draft":       Draft,
	}
	for in, want := range tests {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAction("summarize")
	assert.Error(t, err)
}

func TestActionNextWraps(t *testing.T) {
	assert.Equal(t, ToneChange, Proofread.Next())
	assert.Equal(t, Draft, ToneChange.Next())
	assert.Equal(t, Proofread, Draft.Next())
}

func TestTones(t *testing.T) {
	assert.Len(t, Tones(), 8)
	assert.True(t, Concise.Valid())
	assert.False(t, Tone("shouty").Valid())
	assert.Equal(t, "Enthusiastic", Enthusiastic.Label())
	assert.Equal(t, Professional, Concise.Next())
	assert.Equal(t, Professional, Tone("").Next())

	tone, err := ParseTone("CONCISE")
	require.NoError(t, err)
	assert.Equal(t, Concise, tone)

	_, err = ParseTone("shouty")
	assert.Error(t, err)
}

func TestSnapshotCanSend(t *testing.T) {
	assert.True(t, Snapshot{Visible: true, State: AwaitingInput}.CanSend())
	assert.False(t, Snapshot{Visible: true, State: InFlight}.CanSend())
	assert.False(t, Snapshot{Visible: false, State: AwaitingInput}.CanSend())
}
