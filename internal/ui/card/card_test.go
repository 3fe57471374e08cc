package card

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pieclock/internal/core/countdown"
	"pieclock/internal/core/dial"
	"pieclock/internal/core/model"
)

type fixedClock struct{ now time.Time }

func (clock *fixedClock) Now() time.Time { return clock.now }

func newCard(t *testing.T, options Options) (*Card, *countdown.Engine, *fixedClock) {
	t.Helper()
	test.NewTempApp(t)

	clock := &fixedClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	engine := countdown.New("t1", countdown.SettingsFromDefaults(model.DefaultTimerDefaults()),
		countdown.Options{Clock: clock})
	if options.Sounds == nil {
		options.Sounds = []string{model.SoundNone, "Glass", "Ping"}
	}
	return New(engine, options), engine, clock
}

func TestCard_PrimaryButtonFollowsState(t *testing.T) {
	card, engine, clock := newCard(t, Options{Direction: dial.Clockwise})
	assert.Equal(t, "Start", card.primary.Text)
	assert.True(t, card.primary.Disabled(), "nothing to start")

	engine.SetConfigured(time.Minute)
	card.Refresh()
	require.False(t, card.primary.Disabled())
	assert.Equal(t, "01:00", card.timeText.Text)

	test.Tap(card.primary)
	assert.Equal(t, countdown.StateRunning, engine.State())
	assert.Equal(t, "Pause", card.primary.Text)
	assert.False(t, card.cancel.Disabled())

	test.Tap(card.primary)
	assert.Equal(t, "Resume", card.primary.Text)
	assert.Equal(t, "paused", card.status.Text)

	test.Tap(card.primary)
	clock.now = clock.now.Add(2 * time.Minute)
	engine.Tick(clock.now)
	card.Refresh()
	assert.Equal(t, "Dismiss", card.primary.Text)
	assert.Equal(t, alarmTextColor, card.timeText.Color)
	assert.Contains(t, card.status.Text, "ended")
	assert.False(t, card.restart.Disabled())

	test.Tap(card.primary)
	assert.Equal(t, countdown.StateIdle, engine.State())
}

func TestCard_DurationEntry(t *testing.T) {
	card, engine, _ := newCard(t, Options{})

	card.setDuration("soon")
	assert.Zero(t, engine.View().Configured)

	test.Type(card.duration, "2:30")
	card.duration.OnSubmitted(card.duration.Text)
	assert.Equal(t, 150*time.Second, engine.View().Configured)
	assert.Equal(t, countdown.StateIdle, engine.State())
	assert.Empty(t, card.duration.Text)

	engine.Start()
	card.setDuration("10m")
	assert.Equal(t, 10*time.Minute, engine.Remaining())
}

func TestCard_SettingsWidgets(t *testing.T) {
	card, engine, _ := newCard(t, Options{})

	card.label.SetText("tea")
	card.label.OnSubmitted("tea")
	assert.Equal(t, "tea", engine.Settings().Label)

	card.sound.SetSelected("Ping")
	assert.Equal(t, "Ping", engine.Settings().Sound)

	card.loop.SetChecked(true)
	assert.True(t, engine.Looping())

	card.setManualColor(countdown.UrgencyColor(0))
	assert.False(t, engine.Settings().AutoColor)
	assert.False(t, card.autoColor.Checked)
	card.autoColor.SetChecked(true)
	assert.True(t, engine.Settings().AutoColor)
}

func TestCard_LabelFollowsExternalChanges(t *testing.T) {
	card, engine, _ := newCard(t, Options{})

	settings := engine.Settings()
	settings.Label = "laundry"
	engine.UpdateSettings(settings)
	card.Refresh()
	assert.Equal(t, "laundry", card.label.Text)

	// Unsubmitted typing survives a refresh.
	card.label.SetText("laund")
	card.Refresh()
	assert.Equal(t, "laund", card.label.Text)
}

func TestCard_ScaleButton(t *testing.T) {
	card, engine, _ := newCard(t, Options{})
	engine.SetConfigured(10 * time.Minute)
	card.Refresh()
	assert.Equal(t, "15m (auto)", card.scale.Text)

	test.Tap(card.scale)
	assert.Equal(t, "30m", card.scale.Text)
}

func TestCard_RemoveAndMoveCallbacks(t *testing.T) {
	var removed string
	var moves []int
	card, _, _ := newCard(t, Options{
		OnRemove: func(id string) { removed = id },
		OnMove:   func(id string, delta int) { moves = append(moves, delta) },
	})

	card.move(-1)
	card.move(1)
	assert.Equal(t, []int{-1, 1}, moves)

	card.options.OnRemove(card.Engine().ID())
	assert.Equal(t, "t1", removed)
}

func TestPrimaryText(t *testing.T) {
	assert.Equal(t, "Start", primaryText(countdown.StateIdle))
	assert.Equal(t, "Pause", primaryText(countdown.StateRunning))
	assert.Equal(t, "Resume", primaryText(countdown.StatePaused))
	assert.Equal(t, "Dismiss", primaryText(countdown.StateAlarming))
}
