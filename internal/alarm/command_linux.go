//go:build linux

package alarm

import (
	"context"
	"os/exec"
	"path/filepath"
)

const freedesktopSoundDir = "/usr/share/sounds/freedesktop/stereo"

// linuxSounds maps the app's sound names onto freedesktop theme files.
var linuxSounds = map[string]string{
	"Glass":    "complete.oga",
	"Ping":     "message.oga",
	"Bell":     "bell.oga",
	"Alarm":    "alarm-clock-elapsed.oga",
	"Chime":    "message-new-instant.oga",
	"Complete": "dialog-information.oga",
}

func newCommandPlayer() *CommandPlayer {
	sounds := make(map[string]string, len(linuxSounds))
	for name, file := range linuxSounds {
		sounds[name] = filepath.Join(freedesktopSoundDir, file)
	}

	player := &CommandPlayer{sounds: sounds}
	if path, err := exec.LookPath("paplay"); err == nil {
		player.command = func(ctx context.Context, sound string) *exec.Cmd {
			return exec.CommandContext(ctx, path, sound)
		}
	} else if path, err := exec.LookPath("aplay"); err == nil {
		player.command = func(ctx context.Context, sound string) *exec.Cmd {
			return exec.CommandContext(ctx, path, "-q", sound)
		}
	}
	return player
}
