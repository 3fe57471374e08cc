// Package tui renders the timer collection as a live terminal dashboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"pieclock/internal/core/collection"
	"pieclock/internal/core/dial"
)

const (
	defaultRefresh = 100 * time.Millisecond
	adjustStep     = time.Minute
	minBarWidth    = 10
	maxBarWidth    = 40
)

// tickMsg is sent on every redraw tick.
type tickMsg time.Time

// Options configures the dashboard.
type Options struct {
	Direction dial.Direction
	Refresh   time.Duration
}

// Model is the dashboard state. Timers are ticked by the collection's own
// driver; the model only issues transitions and redraws.
type Model struct {
	timers    *collection.Collection
	keys      keyMap
	help      help.Model
	bar       progress.Model
	direction dial.Direction
	refresh   time.Duration
	selected  int
	width     int
	frame     int
}

// New creates a dashboard for timers.
func New(timers *collection.Collection, options Options) Model {
	if options.Refresh <= 0 {
		options.Refresh = defaultRefresh
	}
	bar := progress.New(progress.WithoutPercentage(), progress.WithWidth(maxBarWidth/2))
	return Model{
		timers:    timers,
		keys:      defaultKeyMap(),
		help:      help.New(),
		bar:       bar,
		direction: dial.ParseDirection(string(options.Direction)),
		refresh:   options.Refresh,
	}
}

// Init starts the redraw ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.refresh)
}

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = clampInt(msg.Width/3, minBarWidth, maxBarWidth)
		return m, nil
	case tickMsg:
		m.frame++
		m.clampSelection()
		return m, tickCmd(m.refresh)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < m.timers.Len()-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.New):
		m.timers.Add()
		m.selected = m.timers.Len() - 1
		return m, nil
	}

	engine, ok := m.timers.At(m.selected)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		engine.Toggle()
	case key.Matches(msg, m.keys.Cancel):
		engine.Cancel()
	case key.Matches(msg, m.keys.Dismiss):
		engine.Dismiss()
	case key.Matches(msg, m.keys.Restart):
		engine.Restart()
	case key.Matches(msg, m.keys.Loop):
		engine.SetLooping(!engine.Looping())
	case key.Matches(msg, m.keys.Scale):
		engine.CycleScale()
	case key.Matches(msg, m.keys.More):
		engine.Nudge(adjustStep)
	case key.Matches(msg, m.keys.Less):
		engine.Nudge(-adjustStep)
	case key.Matches(msg, m.keys.Remove):
		m.timers.Remove(engine.ID())
		m.timers.EnsureOne()
		m.clampSelection()
	}
	return m, nil
}

// Selected returns the index of the highlighted timer.
func (m Model) Selected() int {
	return m.selected
}

func (m *Model) clampSelection() {
	count := m.timers.Len()
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
