package main

import (
	"context"
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"pieclock/internal/alarm"
	"pieclock/internal/config"
	"pieclock/internal/core/collection"
	"pieclock/internal/core/countdown"
	"pieclock/internal/platform"
	"pieclock/internal/storage"
	"pieclock/internal/ui/board"
	"pieclock/internal/ui/card"
	"pieclock/internal/ui/overlay"
	"pieclock/internal/ui/preferences"
	"pieclock/internal/ui/tray"
	"pieclock/resources"
)

const (
	appName = "pieclock"
	appID   = "io.pieclock.app"
)

func main() {
	dir, err := platform.ConfigDir(appName)
	if err != nil {
		log.Printf("config dir: %v", err)
		return
	}

	guard, err := platform.AcquireSingleInstance(dir)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("pieclock is already running")
			return
		}
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		platform.LogError("release instance", guard.Release())
	}()

	settings, err := storage.LoadSettings(dir)
	platform.LogError("load settings", err)

	store, closer, err := storage.Open(settings.Store, dir)
	if err != nil {
		log.Printf("open store: %v", err)
		return
	}
	defer func() {
		platform.LogError("close store", closer.Close())
	}()

	player := alarm.NewCommandPlayer()
	timers := collection.New(collection.Config{
		Engine: countdown.Options{
			Alarm:    alarm.NewRinger(player, nil),
			Selector: settings.Selector(),
		},
		Defaults: settings.TimerDefaults(),
		Store:    store,
		Codec:    storage.YAMLCodec{},
	})
	platform.LogError("load timers", timers.Load())

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))

	mainWindow := fyneApp.NewWindow("Pie Clock")
	timerBoard := board.New(timers, card.Options{
		Direction: settings.SweepDirection,
		Sounds:    alarm.Catalog(),
		Window:    mainWindow,
	})
	mainWindow.SetContent(timerBoard.Content())
	mainWindow.Resize(fyne.NewSize(640, 620))

	alarmOverlay := overlay.New(fyneApp, overlay.Config{Opacity: 230}, overlay.Callbacks{
		OnDismiss: func(id string) {
			if engine, ok := timers.Get(id); ok {
				engine.Dismiss()
			}
		},
		OnDismissAll: func() {
			timers.DismissAll()
		},
	})

	prefsWindow := preferences.New(fyneApp, settings, alarm.Catalog(), func(updated config.Settings) {
		settings = updated
		platform.LogError("save settings", storage.SaveSettings(dir, settings))
		timers.SetDefaults(settings.TimerDefaults())
		timerBoard.SetDirection(settings.SweepDirection)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Idle:     resources.MustIcon(resources.IconApp),
			Running:  resources.MustIcon(resources.IconRunning),
			Alarming: resources.MustIcon(resources.IconAlarming),
		}, tray.Callbacks{
			OnShow: func() {
				mainWindow.Show()
				mainWindow.RequestFocus()
			},
			OnNewTimer: func() {
				timers.Add()
				mainWindow.Show()
			},
			OnPauseAll:    func() { timers.PauseAll() },
			OnResumeAll:   func() { timers.ResumeAll() },
			OnDismissAll:  func() { timers.DismissAll() },
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		// Closing the window keeps the timers running in the tray.
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
		mainWindow.SetMaster()
	}

	ctx, cancel := context.WithCancel(context.Background())
	driverDone := make(chan error, 1)
	go func() {
		driverDone <- timers.Run(ctx, settings.RunOptions())
	}()

	events := timers.Subscribe(64)
	go func() {
		for event := range events {
			fyne.Do(func() {
				handleEvent(event, timers, timerBoard, alarmOverlay, trayManager)
			})
		}
	}()

	mainWindow.Show()
	fyneApp.Run()

	cancel()
	platform.LogError("run timers", <-driverDone)
	timers.Close()
}

func handleEvent(event collection.Event, timers *collection.Collection, timerBoard *board.Board, alarmOverlay *overlay.Window, trayManager *tray.Manager) {
	timerBoard.Handle(event)

	views := timers.Views()
	alarmOverlay.Update(views)
	if trayManager != nil {
		trayManager.Update(views)
	}
}
