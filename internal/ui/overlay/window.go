// Package overlay shows an undecorated window listing ringing timers.
package overlay

import (
	"fmt"
	"image/color"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pieclock/internal/core/countdown"
)

// Config defines overlay visuals.
type Config struct {
	Opacity uint8
}

// Callbacks defines overlay action handlers.
type Callbacks struct {
	OnDismiss    func(id string)
	OnDismissAll func()
}

// Window manages the alarm overlay.
type Window struct {
	window     fyne.Window
	config     Config
	callbacks  Callbacks
	background *canvas.Rectangle
	title      *canvas.Text
	rows       *fyne.Container
	dismissAll *widget.Button
	shown      []string
	visible    bool
}

const (
	overlayWidthFraction  = float32(0.22)
	overlayHeightFraction = float32(0.28)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
	endedLayout           = "15:04"
)

var (
	titleColor = color.NRGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
	textColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until Show is called with
// at least one alarming timer.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	window := app.NewWindow("Pie Clock alarm")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	title := canvas.NewText("Time's up", titleColor)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 21

	overlay := &Window{
		window:     window,
		config:     config,
		callbacks:  callbacks,
		background: background,
		title:      title,
		rows:       container.NewVBox(),
	}
	overlay.dismissAll = widget.NewButton("Dismiss all", func() {
		if overlay.callbacks.OnDismissAll != nil {
			overlay.callbacks.OnDismissAll()
		}
	})
	overlay.dismissAll.Importance = widget.DangerImportance

	content := container.New(&panelLayout{}, title, container.NewVScroll(overlay.rows), overlay.dismissAll)
	window.SetContent(container.NewStack(background, content))
	window.SetCloseIntercept(func() {
		if overlay.callbacks.OnDismissAll != nil {
			overlay.callbacks.OnDismissAll()
		}
		overlay.Hide()
	})

	return overlay
}

// Update shows the alarming timers among views, or hides the window when none ring.
// Call it on the fyne thread.
func (overlay *Window) Update(views []countdown.View) {
	alarming := make([]countdown.View, 0, len(views))
	ids := make([]string, 0, len(views))
	for _, view := range views {
		if view.State == countdown.StateAlarming {
			alarming = append(alarming, view)
			ids = append(ids, view.ID)
		}
	}
	if len(alarming) == 0 {
		overlay.Hide()
		return
	}

	if !overlay.visible || !slices.Equal(ids, overlay.shown) {
		overlay.rows.Objects = overlay.rows.Objects[:0]
		for _, view := range alarming {
			overlay.rows.Add(overlay.row(view))
		}
		overlay.rows.Refresh()
		overlay.shown = ids
	}
	if len(alarming) > 1 {
		overlay.dismissAll.Show()
	} else {
		overlay.dismissAll.Hide()
	}

	if !overlay.visible {
		overlay.visible = true
		overlay.resizeToScreenFraction()
		overlay.window.Show()
		overlay.window.RequestFocus()
	}
}

// Hide closes the overlay.
func (overlay *Window) Hide() {
	if !overlay.visible {
		return
	}
	overlay.visible = false
	overlay.shown = nil
	overlay.window.Hide()
}

// Visible reports whether the overlay is showing.
func (overlay *Window) Visible() bool {
	return overlay.visible
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{A: config.Opacity}
	canvas.Refresh(overlay.background)
}

func (overlay *Window) row(view countdown.View) fyne.CanvasObject {
	label := canvas.NewText(view.Title(), textColor)
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = 17

	ended := canvas.NewText(fmt.Sprintf("ended %s", view.FiredAt.Local().Format(endedLayout)), textColor)
	ended.TextSize = 14

	id := view.ID
	dismiss := widget.NewButton("Dismiss", func() {
		if overlay.callbacks.OnDismiss != nil {
			overlay.callbacks.OnDismiss(id)
		}
	})
	return container.NewBorder(nil, nil, nil, dismiss, container.NewVBox(label, ended))
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// panelLayout stacks the title, the scrolling rows and the dismiss-all button.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	title := objects[0]
	rows := objects[1]
	button := objects[2]

	pad := size.Height * 0.05
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	buttonHeight := float32(0)
	if button.Visible() {
		buttonSize := button.MinSize()
		buttonHeight = buttonSize.Height
		button.Move(fyne.NewPos(size.Width-pad-buttonSize.Width*1.4, size.Height-pad-buttonHeight))
		button.Resize(fyne.NewSize(buttonSize.Width*1.4, buttonHeight))
	}

	rowsY := pad + titleSize.Height + 8
	rowsHeight := size.Height - rowsY - pad - buttonHeight - 8
	if rowsHeight < 0 {
		rowsHeight = 0
	}
	rows.Move(fyne.NewPos(pad, rowsY))
	rows.Resize(fyne.NewSize(availableWidth, rowsHeight))
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	titleSize := objects[0].MinSize()
	rowsSize := objects[1].MinSize()
	buttonSize := objects[2].MinSize()

	width := titleSize.Width
	if rowsSize.Width > width {
		width = rowsSize.Width
	}
	if buttonSize.Width > width {
		width = buttonSize.Width
	}
	height := titleSize.Height + rowsSize.Height + buttonSize.Height + 40
	return fyne.NewSize(width+20, height)
}
