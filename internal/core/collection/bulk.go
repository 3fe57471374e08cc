package collection

import "pieclock/internal/core/countdown"

// PauseAll pauses every running timer and returns how many were paused.
func (collection *Collection) PauseAll() int {
	return collection.each(countdown.StateRunning, (*Engine).Pause)
}

// ResumeAll resumes every paused timer and returns how many were resumed.
func (collection *Collection) ResumeAll() int {
	return collection.each(countdown.StatePaused, (*Engine).Resume)
}

// DismissAll silences every alarming timer and returns how many were dismissed.
func (collection *Collection) DismissAll() int {
	return collection.each(countdown.StateAlarming, (*Engine).Dismiss)
}

// Views returns the presentation values of every timer in display order.
func (collection *Collection) Views() []countdown.View {
	engines := collection.Timers()
	views := make([]countdown.View, 0, len(engines))
	for _, engine := range engines {
		views = append(views, engine.View())
	}
	return views
}

func (collection *Collection) each(state countdown.State, action func(*Engine)) int {
	count := 0
	for _, engine := range collection.Timers() {
		if engine.State() == state {
			action(engine)
			count++
		}
	}
	return count
}
