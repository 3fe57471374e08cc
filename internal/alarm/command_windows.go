//go:build windows

package alarm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var windowsSounds = map[string]string{
	"Glass": "Alarm01.wav",
	"Ping":  "Windows Notify.wav",
	"Bell":  "Windows Ding.wav",
	"Alarm": "Alarm02.wav",
	"Chime": "chimes.wav",
	"Chord": "chord.wav",
	"Ring":  "Ring01.wav",
	"Tada":  "tada.wav",
}

func newCommandPlayer() *CommandPlayer {
	mediaDir := filepath.Join(windowsDir(), "Media")
	sounds := make(map[string]string, len(windowsSounds))
	for name, file := range windowsSounds {
		sounds[name] = filepath.Join(mediaDir, file)
	}
	return &CommandPlayer{
		sounds: sounds,
		command: func(ctx context.Context, path string) *exec.Cmd {
			script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", strings.ReplaceAll(path, "'", "''"))
			return exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
		},
	}
}

func windowsDir() string {
	if dir := os.Getenv("WINDIR"); dir != "" {
		return dir
	}
	return `C:\Windows`
}
