package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pieclock/internal/core/countdown"
)

const menuTitle = "Pie Clock"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnNewTimer    func()
	OnPauseAll    func()
	OnResumeAll   func()
	OnDismissAll  func()
	OnPreferences func()
	OnQuit        func()
}

// Icons are swapped by SetAlarming.
type Icons struct {
	Idle     fyne.Resource
	Running  fyne.Resource
	Alarming fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	icons       Icons
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	dismissItem *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	resumeItem  *fyne.MenuItem
	icon        fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("No timers running", nil)
	manager.statusItem.Disabled = true

	manager.dismissItem = fyne.NewMenuItem("Dismiss all alarms", func() {
		if manager.callbacks.OnDismissAll != nil {
			manager.callbacks.OnDismissAll()
		}
	})
	manager.dismissItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause all", func() {
		if manager.callbacks.OnPauseAll != nil {
			manager.callbacks.OnPauseAll()
		}
	})
	manager.resumeItem = fyne.NewMenuItem("Resume all", func() {
		if manager.callbacks.OnResumeAll != nil {
			manager.callbacks.OnResumeAll()
		}
	})

	manager.refreshMenu()
	manager.setIcon(icons.Idle)
	return manager
}

// Update derives the status line, enabled items and icon from the timers.
func (manager *Manager) Update(views []countdown.View) {
	var running, paused, alarming int
	for _, view := range views {
		switch view.State {
		case countdown.StateRunning:
			running++
		case countdown.StatePaused:
			paused++
		case countdown.StateAlarming:
			alarming++
		}
	}

	manager.statusItem.Label = Status(views)
	manager.dismissItem.Disabled = alarming == 0
	manager.pauseItem.Disabled = running == 0
	manager.resumeItem.Disabled = paused == 0
	manager.refreshMenu()

	switch {
	case alarming > 0:
		manager.setIcon(manager.icons.Alarming)
	case running > 0:
		manager.setIcon(manager.icons.Running)
	default:
		manager.setIcon(manager.icons.Idle)
	}
}

// Status summarizes the timers for the tray: alarms first, then the running
// timer that ends soonest.
func Status(views []countdown.View) string {
	var (
		alarming int
		soonest  *countdown.View
	)
	for i := range views {
		view := &views[i]
		switch view.State {
		case countdown.StateAlarming:
			alarming++
		case countdown.StateRunning:
			if soonest == nil || view.Remaining < soonest.Remaining {
				soonest = view
			}
		}
	}

	switch {
	case alarming == 1:
		return "1 alarm ringing"
	case alarming > 1:
		return fmt.Sprintf("%d alarms ringing", alarming)
	case soonest != nil:
		return fmt.Sprintf("%s: %s left", soonest.Title(), countdown.FormatDuration(soonest.Remaining))
	default:
		return "No timers running"
	}
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	call := func(handler func()) func() {
		return func() {
			if handler != nil {
				handler()
			}
		}
	}
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timers", call(manager.callbacks.OnShow)),
		fyne.NewMenuItem("New timer", call(manager.callbacks.OnNewTimer)),
		manager.dismissItem,
		manager.pauseItem,
		manager.resumeItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", call(manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", call(manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func (manager *Manager) setIcon(icon fyne.Resource) {
	if icon == nil || manager.app == nil || icon == manager.icon {
		return
	}
	manager.icon = icon
	manager.app.SetSystemTrayIcon(icon)
}
