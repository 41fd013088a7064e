package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Rorical/QuickAct/internal/eventbus"
	"github.com/Rorical/QuickAct/internal/gateway/mocks"
	"github.com/Rorical/QuickAct/internal/models"
)

func newTestService(t *testing.T) (*QuickActionService, *eventbus.EventBus, *mocks.MockAI, *fakeClipboard) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ai := mocks.NewMockAI(ctrl)
	settings := mocks.NewMockSettings(ctrl)
	settings.EXPECT().RequestSettings().Return(validSettings(), nil).AnyTimes()
	clip := &fakeClipboard{content: "from clipboard"}

	eb := eventbus.NewEventBus()
	svc := NewQuickActionService(Deps{
		Clipboard: clip,
		AI:        ai,
		Settings:  settings,
	}, eb, nil, WithClock(newFakeClock()), WithRunner(func(f func()) { f() }))
	return svc, eb, ai, clip
}

// nextSnapshot drains core events until one satisfies match.
func nextSnapshot(t *testing.T, eb *eventbus.EventBus, match func(models.Snapshot) bool) models.Snapshot {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-eb.CoreToUI():
			if up, ok := ev.(eventbus.StateUpdateEvent); ok && match(up.Snapshot) {
				return up.Snapshot
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
			return models.Snapshot{}
		}
	}
}

func nextNotice(t *testing.T, eb *eventbus.EventBus) string {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-eb.CoreToUI():
			if n, ok := ev.(eventbus.NoticeEvent); ok {
				return n.Text
			}
		case <-timeout:
			t.Fatal("timed out waiting for notice")
			return ""
		}
	}
}

func TestServicePushesInitialState(t *testing.T) {
	svc, eb, _, _ := newTestService(t)
	svc.Start()
	defer svc.Stop()

	snap := nextSnapshot(t, eb, func(models.Snapshot) bool { return true })
	assert.Equal(t, models.Idle, snap.State)
	assert.False(t, snap.Visible)
}

func TestServiceRoutesUIEvents(t *testing.T) {
	svc, eb, ai, _ := newTestService(t)
	ai.EXPECT().ProcessText(gomock.Any(), gomock.Any()).Return("A draft.", nil)
	svc.Start()
	defer svc.Stop()

	require.NoError(t, eb.SendToCore(eventbus.ShowEvent{}))
	snap := nextSnapshot(t, eb, func(s models.Snapshot) bool { return s.State == models.AwaitingInput })
	assert.Equal(t, "from clipboard", snap.Input)

	require.NoError(t, eb.SendToCore(eventbus.InputChangedEvent{Text: "rough notes"}))
	require.NoError(t, eb.SendToCore(eventbus.SelectActionEvent{Action: models.Draft}))
	require.NoError(t, eb.SendToCore(eventbus.SendEvent{}))

	snap = nextSnapshot(t, eb, func(s models.Snapshot) bool { return s.Result != "" })
	assert.Equal(t, "A draft.", snap.Result)
	assert.Equal(t, "rough notes", snap.ResultInput)

	require.NoError(t, eb.SendToCore(eventbus.CopyEvent{}))
	snap = nextSnapshot(t, eb, func(s models.Snapshot) bool { return s.Copied })
	assert.True(t, snap.Copied)
}

func TestServiceReportsNothingToCopy(t *testing.T) {
	svc, eb, _, _ := newTestService(t)
	svc.Start()
	defer svc.Stop()

	require.NoError(t, eb.SendToCore(eventbus.CopyEvent{}))
	assert.Equal(t, "Nothing to copy yet", nextNotice(t, eb))
}

func TestServiceReportsInvalidTone(t *testing.T) {
	svc, eb, _, _ := newTestService(t)
	svc.Start()
	defer svc.Stop()

	require.NoError(t, eb.SendToCore(eventbus.SelectToneEvent{Tone: "shouty"}))
	assert.Contains(t, nextNotice(t, eb), "shouty")
}
