package collection

import (
	"context"
	"errors"
	"log"
	"time"
)

const (
	defaultTickInterval = 100 * time.Millisecond
	defaultSaveInterval = 5 * time.Second
)

// Options configures the periodic driver.
type Options struct {
	TickInterval time.Duration
	SaveInterval time.Duration
}

func (options Options) withDefaults() Options {
	if options.TickInterval <= 0 {
		options.TickInterval = defaultTickInterval
	}
	if options.SaveInterval <= 0 {
		options.SaveInterval = defaultSaveInterval
	}
	return options
}

// Run ticks every timer until ctx is cancelled, saving dirty state on the
// save interval and once more on the way out.
func (collection *Collection) Run(ctx context.Context, options Options) error {
	options = options.withDefaults()

	ticker := time.NewTicker(options.TickInterval)
	defer ticker.Stop()
	saver := time.NewTicker(options.SaveInterval)
	defer saver.Stop()

	collection.TickAll(collection.now())
	for {
		select {
		case <-ctx.Done():
			collection.saveIfDirty()
			return nil
		case <-ticker.C:
			collection.TickAll(collection.now())
		case <-saver.C:
			collection.saveIfDirty()
		}
	}
}

func (collection *Collection) saveIfDirty() {
	if !collection.Dirty() || collection.config.Store == nil {
		return
	}
	if err := collection.Save(); err != nil && !errors.Is(err, ErrUnreadable) {
		log.Printf("collection: %v", err)
	}
}
