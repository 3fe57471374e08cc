package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"pieclock/internal/config"
	"pieclock/internal/core/dial"
)

const settingsFileName = "settings.yaml"

const (
	minTickIntervalMillis = 10
	maxTickIntervalMillis = 1000
	maxAlarmPlaySeconds   = 600
)

type yamlSettings struct {
	TickIntervalMillis  int      `yaml:"tick_interval_ms"`
	SaveIntervalSeconds int      `yaml:"save_interval_seconds"`
	DefaultSound        string   `yaml:"default_sound"`
	AlarmPlaySeconds    int      `yaml:"alarm_play_seconds"`
	FlashWarning        *bool    `yaml:"flash_warning,omitempty"`
	SweepDirection      string   `yaml:"sweep_direction"`
	Scales              []string `yaml:"scales,omitempty"`
	Store               string   `yaml:"store"`
}

// LoadSettings reads user preferences from YAML in dir.
// If the config file does not exist, default settings are returned.
func LoadSettings(dir string) (config.Settings, error) {
	settings := config.DefaultSettings()
	configPath := filepath.Join(dir, settingsFileName)

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML in dir.
func SaveSettings(dir string, settings config.Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	flash := settings.FlashWarning
	fileData := yamlSettings{
		TickIntervalMillis:  int(settings.TickInterval / time.Millisecond),
		SaveIntervalSeconds: int(settings.SaveInterval / time.Second),
		DefaultSound:        settings.DefaultSound,
		AlarmPlaySeconds:    int(settings.AlarmPlayDuration / time.Second),
		FlashWarning:        &flash,
		SweepDirection:      string(settings.SweepDirection),
		Scales:              settings.Scales,
		Store:               settings.Store,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := atomicWrite(filepath.Join(dir, settingsFileName), serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *config.Settings, fileData yamlSettings) {
	if fileData.TickIntervalMillis >= minTickIntervalMillis && fileData.TickIntervalMillis <= maxTickIntervalMillis {
		settings.TickInterval = time.Duration(fileData.TickIntervalMillis) * time.Millisecond
	}
	if fileData.SaveIntervalSeconds > 0 {
		settings.SaveInterval = time.Duration(fileData.SaveIntervalSeconds) * time.Second
	}
	if sound := strings.TrimSpace(fileData.DefaultSound); sound != "" {
		settings.DefaultSound = sound
	}
	if fileData.AlarmPlaySeconds > 0 && fileData.AlarmPlaySeconds <= maxAlarmPlaySeconds {
		settings.AlarmPlayDuration = time.Duration(fileData.AlarmPlaySeconds) * time.Second
	}
	if fileData.FlashWarning != nil {
		settings.FlashWarning = *fileData.FlashWarning
	}
	if fileData.SweepDirection != "" {
		settings.SweepDirection = dial.ParseDirection(fileData.SweepDirection)
	}
	if len(fileData.Scales) > 0 {
		settings.Scales = append([]string(nil), fileData.Scales...)
	}
	switch fileData.Store {
	case BackendFile, BackendSQLite:
		settings.Store = fileData.Store
	}
}
