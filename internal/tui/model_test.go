package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pieclock/internal/core/collection"
	"pieclock/internal/core/countdown"
	"pieclock/internal/core/dial"
)

type fixedClock struct{ now time.Time }

func (clock *fixedClock) Now() time.Time { return clock.now }

func newTestModel(t *testing.T, timers int) (Model, *collection.Collection, *fixedClock) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	c := collection.New(collection.Config{Engine: countdown.Options{Clock: clock}})
	for i := 0; i < timers; i++ {
		c.Add()
	}
	return New(c, Options{}), c, clock
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_Navigation(t *testing.T) {
	m, _, _ := newTestModel(t, 3)
	assert.Equal(t, 0, m.Selected())

	m = press(m, "down", "down", "down")
	assert.Equal(t, 2, m.Selected())

	m = press(m, "up", "k")
	assert.Equal(t, 0, m.Selected())

	m = press(m, "j")
	assert.Equal(t, 1, m.Selected())
}

func TestModel_AdjustAndToggle(t *testing.T) {
	m, c, clock := newTestModel(t, 1)
	engine := c.Timers()[0]

	m = press(m, "+", "+", "+", "-")
	assert.Equal(t, 2*time.Minute, engine.View().Configured)

	m = press(m, "space")
	assert.Equal(t, countdown.StateRunning, engine.State())

	clock.now = clock.now.Add(30 * time.Second)
	engine.Tick(clock.now)
	m = press(m, "+")
	assert.Equal(t, 2*time.Minute+30*time.Second, engine.Remaining())

	m = press(m, "space")
	assert.Equal(t, countdown.StatePaused, engine.State())
	m = press(m, "space")
	assert.Equal(t, countdown.StateRunning, engine.State())

	press(m, "c")
	assert.Equal(t, countdown.StateIdle, engine.State())
}

func TestModel_DismissThroughToggle(t *testing.T) {
	m, c, clock := newTestModel(t, 1)
	engine := c.Timers()[0]
	engine.SetConfigured(time.Minute)
	engine.Start()
	clock.now = clock.now.Add(time.Minute)
	c.TickAll(clock.now)
	require.Equal(t, countdown.StateAlarming, engine.State())

	press(m, "space")
	assert.Equal(t, countdown.StateIdle, engine.State())
}

func TestModel_NewAndRemove(t *testing.T) {
	m, c, _ := newTestModel(t, 1)

	m = press(m, "n")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, m.Selected())

	m = press(m, "x")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, m.Selected())

	m = press(m, "x")
	assert.Equal(t, 1, c.Len(), "removing the last timer seeds a new one")
	assert.Equal(t, 0, m.Selected())
}

func TestModel_LoopAndScale(t *testing.T) {
	m, c, _ := newTestModel(t, 1)
	engine := c.Timers()[0]
	engine.SetConfigured(2 * time.Minute)

	m = press(m, "l")
	assert.True(t, engine.Looping())

	press(m, "s")
	assert.False(t, engine.Settings().AutoScale)
	assert.Equal(t, "9m", engine.EffectiveScale().Name)
}

func TestModel_QuitAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t, 1)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Nil(t, cmd)
	assert.True(t, next.(Model).help.ShowAll)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowResize(t *testing.T) {
	m, _, _ := newTestModel(t, 1)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 300, Height: 40})
	assert.Equal(t, maxBarWidth, next.(Model).bar.Width)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 12, Height: 40})
	assert.Equal(t, minBarWidth, next.(Model).bar.Width)
}

func TestModel_TickKeepsTicking(t *testing.T) {
	m, _, _ := newTestModel(t, 1)
	next, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, next.(Model).frame)
}

func TestModel_View(t *testing.T) {
	m, c, _ := newTestModel(t, 2)
	first := c.Timers()[0]
	first.SetConfigured(5 * time.Minute)
	settings := first.Settings()
	settings.Label = "tea"
	first.UpdateSettings(settings)

	out := m.View()
	assert.Contains(t, out, "pieclock")
	assert.Contains(t, out, "2 timers")
	assert.Contains(t, out, "tea")
	assert.Contains(t, out, "05:00")
	assert.Contains(t, out, "idle")
	assert.Contains(t, out, "quit")
}

func TestPieGlyph(t *testing.T) {
	assert.Equal(t, "○", PieGlyph(0))
	assert.Equal(t, "◑", PieGlyph(180))
	assert.Equal(t, "●", PieGlyph(360))
	assert.Equal(t, "●", PieGlyph(720))
	assert.Equal(t, "○", PieGlyph(-10))
}

func TestRenderPlainAndTable(t *testing.T) {
	_, c, _ := newTestModel(t, 1)
	engine := c.Timers()[0]
	engine.SetConfigured(90 * time.Second)

	views := []countdown.View{engine.View()}
	plain := RenderPlain(views)
	assert.Equal(t, 1, strings.Count(plain, "\n"))
	assert.Contains(t, plain, "01:30")
	assert.Contains(t, plain, "idle")

	rendered := RenderTable(views)
	assert.Contains(t, rendered, "STATE")
	assert.Contains(t, rendered, engine.ID())
}

func TestModel_CounterClockwiseBar(t *testing.T) {
	c := collection.New(collection.Config{})
	c.Add()
	m := New(c, Options{Direction: dial.CounterClockwise})
	assert.Equal(t, dial.CounterClockwise, m.direction)
	assert.NotEmpty(t, m.renderBar(c.Timers()[0].View()))
}
