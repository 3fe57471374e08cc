package alarm

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// SilentPlayer plays nothing.
type SilentPlayer struct{}

func (SilentPlayer) Play(context.Context, string) error { return nil }

// CommandPlayer plays sounds by running the platform audio command.
type CommandPlayer struct {
	sounds  map[string]string
	command func(ctx context.Context, path string) *exec.Cmd
}

// NewCommandPlayer returns the player for the current platform.
func NewCommandPlayer() *CommandPlayer {
	return newCommandPlayer()
}

// Catalog lists the sound names offered by the current platform, sorted,
// with "None" first.
func Catalog() []string {
	return catalogOf(newCommandPlayer().sounds)
}

func (player *CommandPlayer) Play(ctx context.Context, name string) error {
	path, ok := player.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	if player.command == nil {
		return fmt.Errorf("play %q: no audio command available", name)
	}

	output, err := player.command(ctx, path).CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("play %q: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func catalogOf(sounds map[string]string) []string {
	names := make([]string, 0, len(sounds)+1)
	for name := range sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{"None"}, names...)
}
