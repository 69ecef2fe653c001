// Package settings provides server-side settings management.
package settings

import (
	"fmt"
	"time"
)

type Settings struct {
	// DebounceMs is how long to coalesce bursts of network change
	// events before notifying subscribers.
	DebounceMs int `json:"debounce_ms"`
	// PollIntervalMs is the interface poll interval on platforms
	// without a native change notification mechanism.
	PollIntervalMs int `json:"poll_interval_ms"`
	// HistorySize is the number of recent events kept for queries.
	HistorySize int `json:"history_size"`
	// ResolvFiles are the resolver configuration files offered for
	// DNS change watching.
	ResolvFiles []string `json:"resolv_files"`
}

func Default() Settings {
	return Settings{
		DebounceMs:     300,
		PollIntervalMs: 5000,
		HistorySize:    128,
		ResolvFiles:    []string{"/etc/resolv.conf"},
	}
}

func (s Settings) Validate() error {
	if s.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative: %d", s.DebounceMs)
	}
	if s.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive: %d", s.PollIntervalMs)
	}
	if s.HistorySize <= 0 {
		return fmt.Errorf("history_size must be positive: %d", s.HistorySize)
	}
	for _, path := range s.ResolvFiles {
		if path == "" {
			return fmt.Errorf("resolv_files must not contain empty paths")
		}
	}
	return nil
}

func (s Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMs) * time.Millisecond
}
