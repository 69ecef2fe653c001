// Package netmon watches host network state for changes.
//
// A Monitor wraps the platform's native change-notification mechanism:
// the Darwin notification center on macOS, a netlink route socket on
// Linux, and periodic interface polling elsewhere. Events are delivered
// to a callback; coalescing and fan-out to subscribers happen above
// this package.
package netmon

import (
	"context"
	"time"
)

// EventKind classifies a detected network change.
type EventKind string

const (
	// KindInterfaces covers interfaces appearing, disappearing, or
	// changing link state.
	KindInterfaces EventKind = "interfaces-changed"
	// KindAddress covers address assignment changes on an interface.
	KindAddress EventKind = "address-changed"
	// KindRoute covers routing table changes.
	KindRoute EventKind = "route-changed"
)

// Event is a single detected network change.
type Event struct {
	Kind      EventKind `json:"kind"`
	Interface string    `json:"interface,omitempty"`
	Source    string    `json:"source"`
	Time      time.Time `json:"time"`
}

// Monitor watches for host network changes.
type Monitor interface {
	// Start begins watching and invokes fn for each detected change
	// until ctx is cancelled. It returns once watching is established;
	// fn may be called from an OS-owned thread.
	Start(ctx context.Context, fn func(Event)) error

	// Backend names the platform mechanism in use.
	Backend() string
}

// New returns the native Monitor for this platform. pollInterval is
// only used by backends that fall back to polling.
func New(pollInterval time.Duration) Monitor {
	return newPlatformMonitor(pollInterval)
}
