package dispatcher

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/QuickAct/internal/eventbus"
	"github.com/Rorical/QuickAct/internal/models"
	"github.com/Rorical/QuickAct/internal/update"
)

func TestListenForCoreEvents(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb, nil)

	require.NoError(t, eb.SendToUI(eventbus.StateUpdateEvent{Snapshot: models.Snapshot{Seq: 1}}))

	msg := ed.ListenForCoreEvents()()
	coreMsg, ok := msg.(update.CoreEventMsg)
	require.True(t, ok)
	assert.Equal(t, eventbus.StateUpdateEvent{Snapshot: models.Snapshot{Seq: 1}}, coreMsg.Event)
}

func TestListenReturnsNilAfterStop(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb, nil)

	ed.Stop()
	assert.Nil(t, ed.ListenForCoreEvents()())
}

func TestListenReturnsNilWhenBusClosed(t *testing.T) {
	eb := eventbus.NewEventBus()
	ed := NewEventDispatcher(eb, nil)

	eb.Close()
	assert.Nil(t, ed.ListenForCoreEvents()())
}

func TestStartLogsBusErrors(t *testing.T) {
	var buf bytes.Buffer
	eb := eventbus.NewEventBusWithSize(1)
	defer eb.Close()
	ed := NewEventDispatcher(eb, log.New(&buf))
	ed.Start()

	require.NoError(t, eb.SendToUI(eventbus.NoticeEvent{Text: "a"}))
	assert.Error(t, eb.SendToUI(eventbus.NoticeEvent{Text: "b"}))
	assert.Contains(t, buf.String(), "SendToUI")
}
