package netmon

import (
	"context"
	"time"

	"github.com/netwatch/server/darwinnotify"
)

const darwinBackend = "darwin-notify"

func newPlatformMonitor(time.Duration) Monitor {
	return &darwinMonitor{}
}

// darwinMonitor registers for kNotifySCNetworkChange with the Darwin
// notification center. configd posts a single coalesced notification
// for any network configuration change, so every event carries
// KindInterfaces and no interface name.
type darwinMonitor struct {
	notifier *darwinnotify.Notifier
}

func (m *darwinMonitor) Backend() string { return darwinBackend }

func (m *darwinMonitor) Start(ctx context.Context, fn func(Event)) error {
	notifier, err := darwinnotify.Register(darwinnotify.NetworkChange, func(int) {
		fn(Event{
			Kind:   KindInterfaces,
			Source: darwinBackend,
			Time:   time.Now(),
		})
	})
	if err != nil {
		return err
	}
	m.notifier = notifier

	context.AfterFunc(ctx, notifier.Cancel)
	return nil
}
