//go:build !darwin && !linux

package netmon

import (
	"context"
	"log/slog"
	"time"
)

const pollBackend = "poll"

const defaultPollInterval = 5 * time.Second

func newPlatformMonitor(pollInterval time.Duration) Monitor {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &pollMonitor{interval: pollInterval}
}

// pollMonitor periodically snapshots the interface table and emits the
// diff. Used where no native change notification exists.
type pollMonitor struct {
	interval time.Duration
}

func (m *pollMonitor) Backend() string { return pollBackend }

func (m *pollMonitor) Start(ctx context.Context, fn func(Event)) error {
	snap, err := TakeSnapshot()
	if err != nil {
		return err
	}

	go m.pollLoop(ctx, snap, fn)
	return nil
}

func (m *pollMonitor) pollLoop(ctx context.Context, last *Snapshot, fn func(Event)) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, err := TakeSnapshot()
			if err != nil {
				slog.Debug("interface snapshot failed", "error", err)
				continue
			}
			for _, ev := range snap.Diff(last, pollBackend) {
				fn(ev)
			}
			last = snap
		}
	}
}
