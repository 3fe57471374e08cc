// Package countdown implements the per-timer state machine behind a pie-clock.
//
// Remaining time is always derived from an absolute deadline, never by
// subtracting a fixed step per tick, so scheduler jitter does not accumulate.
package countdown

import (
	"sync"
	"time"

	"pieclock/internal/core/clockface"
	"pieclock/internal/core/model"
)

// Alarm plays the expiry sound. Ring must not block; done is invoked once the
// play window has elapsed and never after stop has been called.
type Alarm interface {
	Ring(sound string, playFor time.Duration, done func()) (stop func())
}

// Options contains the collaborators shared by engines.
type Options struct {
	Clock    Clock
	Alarm    Alarm
	Selector *clockface.Selector
}

func (options Options) withDefaults() Options {
	if options.Clock == nil {
		options.Clock = SystemClock()
	}
	if options.Selector == nil {
		options.Selector = clockface.Default()
	}
	return options
}

// Settings are the presentation fields of a timer. None of them affect countdown math.
type Settings struct {
	Label             string
	Sound             string
	AlarmPlayDuration time.Duration
	ManualScale       string
	AutoScale         bool
	ManualColor       string
	AutoColor         bool
	FlashWarning      bool
}

// SettingsFromDefaults builds the settings of a fresh timer.
func SettingsFromDefaults(defaults model.TimerDefaults) Settings {
	return Settings{
		Sound:             defaults.Sound,
		AlarmPlayDuration: defaults.AlarmPlayDuration,
		AutoScale:         defaults.AutoScale,
		ManualColor:       defaults.ManualColor,
		AutoColor:         defaults.AutoColor,
		FlashWarning:      defaults.FlashWarning,
	}
}

// Engine is a single countdown.
type Engine struct {
	mu       sync.Mutex
	id       string
	options  Options
	settings Settings

	state      State
	configured time.Duration
	initial    time.Duration
	remaining  time.Duration
	// deadline is the expiry instant while running and the fired-at instant while alarming.
	deadline time.Time
	looping  bool

	ringing  bool
	ringSeq  uint64
	stopRing func()

	observer func(Event)
}

// effects collects work that must run after the engine lock is released.
type effects struct {
	events  []Event
	stop    func()
	ring    bool
	ringSeq uint64
	sound   string
	playFor time.Duration
}

// New creates an idle engine with no configured duration.
func New(id string, settings Settings, options Options) *Engine {
	return &Engine{
		id:       id,
		options:  options.withDefaults(),
		settings: sanitizeSettings(settings),
		state:    StateIdle,
	}
}

// ID returns the timer identifier.
func (engine *Engine) ID() string {
	return engine.id
}

// SetObserver registers the single callback notified after every change.
func (engine *Engine) SetObserver(observer func(Event)) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.observer = observer
}

// State returns the current state.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Remaining returns the last computed remaining time.
func (engine *Engine) Remaining() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remaining
}

// IsRinging reports whether the alarm sound is still playing.
func (engine *Engine) IsRinging() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.ringing
}

// Start begins counting down the configured duration. It is a no-op unless
// the engine is idle with a positive configured duration.
func (engine *Engine) Start() {
	engine.mu.Lock()
	var fx effects
	engine.startLocked(engine.options.Clock.Now(), &fx)
	engine.mu.Unlock()
	engine.apply(fx)
}

// Pause freezes the countdown at its last computed remaining time.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	var fx effects
	if engine.state == StateRunning {
		engine.state = StatePaused
		engine.deadline = time.Time{}
		fx.events = append(fx.events, engine.eventLocked(EventStateChange, engine.options.Clock.Now()))
	}
	engine.mu.Unlock()
	engine.apply(fx)
}

// Resume continues a paused countdown.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	var fx effects
	if engine.state == StatePaused {
		now := engine.options.Clock.Now()
		engine.state = StateRunning
		engine.deadline = now.Add(engine.remaining)
		fx.events = append(fx.events, engine.eventLocked(EventStateChange, now))
	}
	engine.mu.Unlock()
	engine.apply(fx)
}

// Cancel stops a running or paused countdown and returns to idle.
func (engine *Engine) Cancel() {
	engine.mu.Lock()
	var fx effects
	if engine.state == StateRunning || engine.state == StatePaused {
		fx.stop = engine.stopRingingLocked()
		engine.state = StateIdle
		engine.remaining = 0
		engine.deadline = time.Time{}
		fx.events = append(fx.events, engine.eventLocked(EventStateChange, engine.options.Clock.Now()))
	}
	engine.mu.Unlock()
	engine.apply(fx)
}

// Dismiss acknowledges an alarm and returns to idle.
func (engine *Engine) Dismiss() {
	engine.mu.Lock()
	var fx effects
	if engine.state == StateAlarming {
		fx.stop = engine.stopRingingLocked()
		engine.state = StateIdle
		engine.remaining = 0
		engine.deadline = time.Time{}
		fx.events = append(fx.events, engine.eventLocked(EventStateChange, engine.options.Clock.Now()))
	}
	engine.mu.Unlock()
	engine.apply(fx)
}

// Restart runs the timer again from its initial duration.
func (engine *Engine) Restart() {
	engine.mu.Lock()
	var fx effects
	if engine.state != StateIdle && engine.initial > 0 {
		now := engine.options.Clock.Now()
		fx.stop = engine.stopRingingLocked()
		engine.state = StateRunning
		engine.remaining = engine.initial
		engine.deadline = now.Add(engine.initial)
		fx.events = append(fx.events, engine.eventLocked(EventStateChange, now))
	}
	engine.mu.Unlock()
	engine.apply(fx)
}

// Stop silences any ringing alarm without changing state. Used when the
// timer is removed from its collection.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	stop := engine.stopRingingLocked()
	engine.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Tick recomputes remaining from the deadline and handles expiry.
// Ticks outside the running state are ignored, so repeated ticks after expiry
// never ring twice.
func (engine *Engine) Tick(now time.Time) {
	engine.mu.Lock()
	var fx effects
	engine.tickLocked(now, &fx)
	engine.mu.Unlock()
	engine.apply(fx)
}

// SetConfigured sets the dialed-in duration of an idle timer.
func (engine *Engine) SetConfigured(duration time.Duration) {
	engine.mu.Lock()
	var fx effects
	if engine.state == StateIdle {
		engine.configured = clampDuration(duration)
		engine.remaining = engine.configured
		fx.events = append(fx.events, engine.eventLocked(EventUpdated, engine.options.Clock.Now()))
	}
	engine.mu.Unlock()
	engine.apply(fx)
}

// SetRemainingDirectly applies a dial drag. An active timer continues from the
// new value (dragging to zero cancels it); an idle or alarming timer is
// configured with the value and started when it is positive.
func (engine *Engine) SetRemainingDirectly(duration time.Duration) {
	duration = clampDuration(duration)

	engine.mu.Lock()
	var fx effects
	now := engine.options.Clock.Now()
	switch engine.state {
	case StateRunning, StatePaused:
		if duration == 0 {
			fx.stop = engine.stopRingingLocked()
			engine.state = StateIdle
			engine.remaining = 0
			engine.deadline = time.Time{}
			fx.events = append(fx.events, engine.eventLocked(EventStateChange, now))
			break
		}
		engine.remaining = duration
		engine.initial = duration
		if engine.state == StateRunning {
			engine.deadline = now.Add(duration)
		}
		fx.events = append(fx.events, engine.eventLocked(EventUpdated, now))
	case StateIdle, StateAlarming:
		eventType := EventUpdated
		if engine.state == StateAlarming {
			eventType = EventStateChange
		}
		fx.stop = engine.stopRingingLocked()
		engine.state = StateIdle
		engine.deadline = time.Time{}
		engine.configured = duration
		engine.remaining = duration
		if !engine.startLocked(now, &fx) {
			fx.events = append(fx.events, engine.eventLocked(eventType, now))
		}
	}
	engine.mu.Unlock()
	engine.apply(fx)
}

// SetLooping toggles automatic restart on expiry.
func (engine *Engine) SetLooping(looping bool) {
	engine.mu.Lock()
	engine.looping = looping
	fx := effects{events: []Event{engine.eventLocked(EventUpdated, engine.options.Clock.Now())}}
	engine.mu.Unlock()
	engine.apply(fx)
}

// Looping reports whether the timer restarts automatically.
func (engine *Engine) Looping() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.looping
}

// Settings returns a copy of the presentation settings.
func (engine *Engine) Settings() Settings {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.settings
}

// UpdateSettings replaces the presentation settings.
func (engine *Engine) UpdateSettings(settings Settings) {
	engine.mu.Lock()
	engine.settings = sanitizeSettings(settings)
	fx := effects{events: []Event{engine.eventLocked(EventUpdated, engine.options.Clock.Now())}}
	engine.mu.Unlock()
	engine.apply(fx)
}

// CycleScale switches to manual scaling and advances to the next watchface
// able to show the displayed duration.
func (engine *Engine) CycleScale() {
	engine.mu.Lock()
	current := engine.effectiveScaleLocked()
	next := engine.options.Selector.Next(current, engine.displayedLocked())
	engine.settings.AutoScale = false
	engine.settings.ManualScale = next.Name
	fx := effects{events: []Event{engine.eventLocked(EventUpdated, engine.options.Clock.Now())}}
	engine.mu.Unlock()
	engine.apply(fx)
}

func (engine *Engine) startLocked(now time.Time, fx *effects) bool {
	if engine.state != StateIdle || engine.configured <= 0 {
		return false
	}
	engine.initial = engine.configured
	engine.remaining = engine.configured
	engine.deadline = now.Add(engine.configured)
	engine.state = StateRunning
	if !engine.settings.AutoScale {
		if scale, ok := engine.options.Selector.Lookup(engine.settings.ManualScale); !ok || scale.Max < engine.remaining {
			engine.settings.ManualScale = engine.options.Selector.BestFit(engine.remaining).Name
		}
	}
	fx.events = append(fx.events, engine.eventLocked(EventStateChange, now))
	return true
}

func (engine *Engine) tickLocked(now time.Time, fx *effects) {
	if engine.state != StateRunning || engine.deadline.IsZero() {
		return
	}
	if now.Before(engine.deadline) {
		engine.remaining = engine.deadline.Sub(now)
		return
	}

	engine.remaining = 0
	fx.stop = engine.stopRingingLocked()
	engine.ringLocked(fx)

	if engine.looping && engine.initial > 0 {
		engine.remaining = engine.initial
		engine.deadline = now.Add(engine.initial)
		fx.events = append(fx.events, engine.eventLocked(EventExpired, now))
		return
	}

	engine.state = StateAlarming
	fx.events = append(fx.events,
		engine.eventLocked(EventExpired, now),
		engine.eventLocked(EventStateChange, now),
	)
}

func (engine *Engine) ringLocked(fx *effects) {
	if engine.options.Alarm == nil || engine.settings.Sound == model.SoundNone {
		return
	}
	engine.ringSeq++
	engine.ringing = true
	fx.ring = true
	fx.ringSeq = engine.ringSeq
	fx.sound = engine.settings.Sound
	fx.playFor = engine.settings.AlarmPlayDuration
}

// stopRingingLocked invalidates the current ring and returns its stop function.
func (engine *Engine) stopRingingLocked() func() {
	if !engine.ringing && engine.stopRing == nil {
		return nil
	}
	engine.ringSeq++
	engine.ringing = false
	stop := engine.stopRing
	engine.stopRing = nil
	return stop
}

func (engine *Engine) apply(fx effects) {
	if fx.stop != nil {
		fx.stop()
	}
	if fx.ring {
		engine.startRing(fx.ringSeq, fx.sound, fx.playFor)
	}
	if len(fx.events) == 0 {
		return
	}
	engine.mu.Lock()
	observer := engine.observer
	engine.mu.Unlock()
	if observer == nil {
		return
	}
	for _, event := range fx.events {
		observer(event)
	}
}

func (engine *Engine) startRing(seq uint64, sound string, playFor time.Duration) {
	stop := engine.options.Alarm.Ring(sound, playFor, func() {
		engine.finishRing(seq)
	})
	if stop == nil {
		return
	}

	engine.mu.Lock()
	if engine.ringing && engine.ringSeq == seq {
		engine.stopRing = stop
		engine.mu.Unlock()
		return
	}
	engine.mu.Unlock()
	// Dismissed or cancelled before playback was registered.
	stop()
}

func (engine *Engine) finishRing(seq uint64) {
	engine.mu.Lock()
	if !engine.ringing || engine.ringSeq != seq {
		engine.mu.Unlock()
		return
	}
	engine.ringing = false
	engine.stopRing = nil
	fx := effects{events: []Event{engine.eventLocked(EventAlarmStopped, engine.options.Clock.Now())}}
	engine.mu.Unlock()
	engine.apply(fx)
}

func (engine *Engine) eventLocked(eventType EventType, at time.Time) Event {
	return Event{
		Type:      eventType,
		TimerID:   engine.id,
		State:     engine.state,
		Remaining: engine.remaining,
		At:        at,
	}
}

func sanitizeSettings(settings Settings) Settings {
	settings.AlarmPlayDuration = clampDuration(settings.AlarmPlayDuration)
	if settings.Sound == "" {
		settings.Sound = model.DefaultTimerDefaults().Sound
	}
	return settings
}

func clampDuration(value time.Duration) time.Duration {
	if value < 0 {
		return 0
	}
	return value
}
