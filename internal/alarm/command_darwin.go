//go:build darwin

package alarm

import (
	"context"
	"os/exec"
	"path/filepath"
)

const systemSoundDir = "/System/Library/Sounds"

var darwinSounds = []string{
	"Basso", "Blow", "Bottle", "Frog", "Funk", "Glass", "Hero",
	"Morse", "Ping", "Pop", "Purr", "Sosumi", "Submarine", "Tink",
}

func newCommandPlayer() *CommandPlayer {
	sounds := make(map[string]string, len(darwinSounds))
	for _, name := range darwinSounds {
		sounds[name] = filepath.Join(systemSoundDir, name+".aiff")
	}
	return &CommandPlayer{
		sounds: sounds,
		command: func(ctx context.Context, path string) *exec.Cmd {
			return exec.CommandContext(ctx, "afplay", path)
		},
	}
}
