// Package board lays out one card per timer and keeps it in step with the collection.
package board

import (
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pieclock/internal/core/collection"
	"pieclock/internal/core/dial"
	"pieclock/internal/ui/card"
)

var cardSize = fyne.NewSize(300, 560)

// Board is the main window content.
type Board struct {
	timers  *collection.Collection
	options card.Options
	cards   map[string]*card.Card
	order   []string
	grid    *fyne.Container
	content fyne.CanvasObject
}

// New builds a board for timers. OnRemove and OnMove in options are replaced.
func New(timers *collection.Collection, options card.Options) *Board {
	board := &Board{
		timers: timers,
		cards:  make(map[string]*card.Card),
		grid:   container.NewGridWrap(cardSize),
	}
	options.OnRemove = board.remove
	options.OnMove = board.move
	board.options = options

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), board.add),
	)
	board.content = container.NewBorder(toolbar, nil, nil, nil, container.NewVScroll(board.grid))
	board.Sync()
	return board
}

// Content returns the board's canvas object.
func (board *Board) Content() fyne.CanvasObject {
	return board.content
}

// Card returns the card of the timer with id.
func (board *Board) Card(id string) (*card.Card, bool) {
	c, ok := board.cards[id]
	return c, ok
}

// Len returns the number of cards on the board.
func (board *Board) Len() int {
	return len(board.order)
}

// SetDirection applies a new sweep direction to every card.
func (board *Board) SetDirection(direction dial.Direction) {
	board.options.Direction = direction
	for _, c := range board.cards {
		c.SetDirection(direction)
	}
}

// Handle applies a collection event. Call it on the fyne thread.
func (board *Board) Handle(event collection.Event) {
	switch event.Type {
	case collection.EventAdded, collection.EventRemoved, collection.EventReordered:
		board.Sync()
	default:
		if c, ok := board.cards[event.TimerID]; ok {
			c.Refresh()
			return
		}
		board.refreshAll()
	}
}

// Sync rebuilds the grid when membership or order changed and refreshes every card.
func (board *Board) Sync() {
	engines := board.timers.Timers()
	order := make([]string, 0, len(engines))
	seen := make(map[string]bool, len(engines))
	for _, engine := range engines {
		id := engine.ID()
		order = append(order, id)
		seen[id] = true
		if _, ok := board.cards[id]; !ok {
			board.cards[id] = card.New(engine, board.options)
		}
	}
	for id := range board.cards {
		if !seen[id] {
			delete(board.cards, id)
		}
	}

	if !slices.Equal(order, board.order) {
		objects := make([]fyne.CanvasObject, 0, len(order))
		for _, id := range order {
			objects = append(objects, board.cards[id].Content())
		}
		board.grid.Objects = objects
		board.grid.Refresh()
		board.order = order
	}
	board.refreshAll()
}

func (board *Board) refreshAll() {
	for _, c := range board.cards {
		c.Refresh()
	}
}

func (board *Board) add() {
	board.timers.Add()
	board.Sync()
}

func (board *Board) remove(id string) {
	board.timers.Remove(id)
	board.timers.EnsureOne()
	board.Sync()
}

func (board *Board) move(id string, delta int) {
	for index, current := range board.order {
		if current == id {
			board.timers.Reorder(id, index+delta)
			break
		}
	}
	board.Sync()
}
