// Package clockface picks the watchface scale used to display a duration.
package clockface

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Scale is the duration represented by one full revolution of the dial.
type Scale struct {
	Name string
	Max  time.Duration
}

// DefaultScales is the ordered list of watchfaces shipped with the app.
var DefaultScales = []Scale{
	{Name: "60s", Max: 60 * time.Second},
	{Name: "5m", Max: 5 * time.Minute},
	{Name: "9m", Max: 9 * time.Minute},
	{Name: "15m", Max: 15 * time.Minute},
	{Name: "30m", Max: 30 * time.Minute},
	{Name: "60m", Max: 60 * time.Minute},
	{Name: "90m", Max: 90 * time.Minute},
	{Name: "120m", Max: 120 * time.Minute},
	{Name: "4h", Max: 4 * time.Hour},
	{Name: "8h", Max: 8 * time.Hour},
	{Name: "12h", Max: 12 * time.Hour},
	{Name: "16h", Max: 16 * time.Hour},
	{Name: "24h", Max: 24 * time.Hour},
	{Name: "48h", Max: 48 * time.Hour},
	{Name: "72h", Max: 72 * time.Hour},
	{Name: "96h", Max: 96 * time.Hour},
}

// Selector chooses scales from a fixed ascending list.
type Selector struct {
	scales []Scale
}

// NewSelector builds a selector from scales. Entries with a non-positive
// maximum or a duplicate maximum are dropped. An empty result falls back to DefaultScales.
func NewSelector(scales []Scale) *Selector {
	cleaned := make([]Scale, 0, len(scales))
	seen := make(map[time.Duration]bool, len(scales))
	for _, scale := range scales {
		if scale.Max <= 0 || seen[scale.Max] {
			continue
		}
		seen[scale.Max] = true
		if scale.Name == "" {
			scale.Name = FormatName(scale.Max)
		}
		cleaned = append(cleaned, scale)
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultScales...)
	}
	sort.Slice(cleaned, func(i, j int) bool {
		return cleaned[i].Max < cleaned[j].Max
	})
	return &Selector{scales: cleaned}
}

// Default returns a selector over DefaultScales.
func Default() *Selector {
	return NewSelector(DefaultScales)
}

// Scales returns a copy of the ordered scale list.
func (selector *Selector) Scales() []Scale {
	return append([]Scale(nil), selector.scales...)
}

// Smallest returns the finest scale.
func (selector *Selector) Smallest() Scale {
	return selector.scales[0]
}

// Largest returns the coarsest scale.
func (selector *Selector) Largest() Scale {
	return selector.scales[len(selector.scales)-1]
}

// BestFit returns the smallest scale that can show remaining, or the largest
// scale when remaining exceeds every bucket.
func (selector *Selector) BestFit(remaining time.Duration) Scale {
	for _, scale := range selector.scales {
		if scale.Max >= remaining {
			return scale
		}
	}
	return selector.Largest()
}

// Available returns the scales able to show remaining without clipping.
// When nothing fits, only the largest scale is returned.
func (selector *Selector) Available(remaining time.Duration) []Scale {
	available := make([]Scale, 0, len(selector.scales))
	for _, scale := range selector.scales {
		if scale.Max >= remaining {
			available = append(available, scale)
		}
	}
	if len(available) == 0 {
		available = append(available, selector.Largest())
	}
	return available
}

// Next returns the available scale following current, wrapping around.
// A current scale that is not available yields the best fit.
func (selector *Selector) Next(current Scale, remaining time.Duration) Scale {
	available := selector.Available(remaining)
	for index, scale := range available {
		if scale.Max == current.Max {
			return available[(index+1)%len(available)]
		}
	}
	return available[0]
}

// Lookup finds a scale by name.
func (selector *Selector) Lookup(name string) (Scale, bool) {
	for _, scale := range selector.scales {
		if scale.Name == name {
			return scale, true
		}
	}
	return Scale{}, false
}

// ParseScales parses configuration values such as "90m" or "4h".
func ParseScales(values []string) ([]Scale, error) {
	scales := make([]Scale, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("parse scale %q: %w", value, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("parse scale %q: must be positive", value)
		}
		scales = append(scales, Scale{Name: value, Max: parsed})
	}
	return scales, nil
}

// FormatName renders a scale maximum the way DefaultScales names it.
func FormatName(max time.Duration) string {
	switch {
	case max <= time.Minute && max%time.Second == 0:
		return fmt.Sprintf("%ds", int(max/time.Second))
	case max <= 2*time.Hour && max%time.Minute == 0:
		return fmt.Sprintf("%dm", int(max/time.Minute))
	case max%time.Hour == 0:
		return fmt.Sprintf("%dh", int(max/time.Hour))
	default:
		return max.String()
	}
}
