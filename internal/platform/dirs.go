package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the per-user directory holding settings and timers for appName.
func ConfigDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		homeDir, homeErr := os.UserHomeDir()
		if homeErr != nil {
			if err != nil {
				return "", fmt.Errorf("get config dir: %w", err)
			}
			return "", fmt.Errorf("get config dir: %w", homeErr)
		}
		base = fallbackConfigDir(homeDir)
	}
	return filepath.Join(base, dirName(appName)), nil
}

func dirName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "pieclock"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}
