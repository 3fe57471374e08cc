// Package alarm plays expiry sounds for countdowns.
package alarm

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// repeatGap separates repetitions of a short sound inside the play window.
const repeatGap = 500 * time.Millisecond

// ErrUnknownSound is returned when a player cannot resolve a sound name.
var ErrUnknownSound = errors.New("unknown sound")

// Player plays a named sound. Play blocks until the sound ends or ctx is done.
type Player interface {
	Play(ctx context.Context, name string) error
}

// Ringer repeats a sound for a fixed window, switching to a fallback player
// when the primary one fails.
type Ringer struct {
	player   Player
	fallback Player
}

// NewRinger creates a Ringer. A nil fallback uses the terminal bell.
func NewRinger(player, fallback Player) *Ringer {
	if fallback == nil {
		fallback = NewBellPlayer(nil)
	}
	if player == nil {
		player = fallback
	}
	return &Ringer{player: player, fallback: fallback}
}

// Ring starts playback in the background. done runs once the window elapses
// and never after stop has been called.
func (ringer *Ringer) Ring(sound string, playFor time.Duration, done func()) (stop func()) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if playFor > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), playFor)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	ring := &ring{cancel: cancel}
	go ring.run(ctx, ringer.player, ringer.fallback, sound, playFor > 0, done)
	return ring.stop
}

type ring struct {
	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
}

func (ring *ring) stop() {
	ring.mu.Lock()
	ring.stopped = true
	ring.mu.Unlock()
	ring.cancel()
}

func (ring *ring) run(ctx context.Context, player, fallback Player, sound string, repeat bool, done func()) {
	defer ring.cancel()

	for ctx.Err() == nil {
		err := player.Play(ctx, sound)
		if err != nil && ctx.Err() == nil {
			log.Printf("alarm: play %q: %v", sound, err)
			if player == fallback {
				if repeat {
					<-ctx.Done()
				}
				break
			}
			player = fallback
			continue
		}
		if !repeat {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(repeatGap):
		}
	}

	ring.mu.Lock()
	defer ring.mu.Unlock()
	if ring.stopped || done == nil {
		return
	}
	ring.stopped = true
	done()
}
