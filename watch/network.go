package watch

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/netwatch/server/metrics"
	"github.com/netwatch/server/netmon"
)

const defaultNetworkDebounce = 300 * time.Millisecond

// ErrUnknownSubscription is returned for suspend/resume of an unknown ID.
var ErrUnknownSubscription = errors.New("unknown subscription")

// NetworkWatcher bridges a netmon.Monitor to subscribers. Bursts of
// change events are coalesced for a debounce interval before fan-out,
// and every raw event is recorded in the history ring. Individual
// subscriptions can be suspended and resumed without losing the
// registration, mirroring the platform notifier's suspend semantics.
type NetworkWatcher struct {
	*BaseWatcher

	monitor  netmon.Monitor
	history  *netmon.History
	debounce time.Duration

	suspendMu sync.Mutex
	suspended map[string]bool

	timerMu sync.Mutex
	timer   *time.Timer
	pending []netmon.Event
}

func NewNetworkWatcher(monitor netmon.Monitor, history *netmon.History, debounce time.Duration) *NetworkWatcher {
	if debounce <= 0 {
		debounce = defaultNetworkDebounce
	}
	return &NetworkWatcher{
		BaseWatcher: NewBaseWatcher("n"),
		monitor:     monitor,
		history:     history,
		debounce:    debounce,
		suspended:   make(map[string]bool),
	}
}

func (w *NetworkWatcher) Start() error {
	if err := w.monitor.Start(w.Context(), w.handleEvent); err != nil {
		return err
	}
	slog.Info("NetworkWatcher started", "backend", w.monitor.Backend(), "debounce", w.debounce)
	return nil
}

func (w *NetworkWatcher) Stop() {
	w.Cancel()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()

	slog.Info("NetworkWatcher stopped")
}

// Backend names the platform mechanism feeding this watcher.
func (w *NetworkWatcher) Backend() string { return w.monitor.Backend() }

// SetDebounce changes the coalescing interval. A pending flush keeps
// its old deadline; the new interval applies from the next event.
func (w *NetworkWatcher) SetDebounce(d time.Duration) {
	if d <= 0 {
		d = defaultNetworkDebounce
	}
	w.timerMu.Lock()
	w.debounce = d
	w.timerMu.Unlock()
}

// Subscribe registers a subscriber and returns the subscription ID.
func (w *NetworkWatcher) Subscribe(notifier Notifier) string {
	id := w.GenerateID()
	w.AddSubscription(&Subscription{ID: id, Notifier: notifier})
	metrics.ActiveSubscriptions.WithLabelValues("network").Inc()
	return id
}

// Unsubscribe overrides BaseWatcher.Unsubscribe to also drop suspension state.
func (w *NetworkWatcher) Unsubscribe(id string) {
	if w.RemoveSubscription(id) == nil {
		return
	}

	w.suspendMu.Lock()
	delete(w.suspended, id)
	w.suspendMu.Unlock()

	metrics.ActiveSubscriptions.WithLabelValues("network").Dec()
}

// Suspend pauses delivery for one subscription. The registration is
// kept; events that fire while suspended are not replayed on resume.
func (w *NetworkWatcher) Suspend(id string) error {
	if w.GetSubscription(id) == nil {
		return ErrUnknownSubscription
	}

	w.suspendMu.Lock()
	w.suspended[id] = true
	w.suspendMu.Unlock()
	return nil
}

// Resume undoes a Suspend.
func (w *NetworkWatcher) Resume(id string) error {
	if w.GetSubscription(id) == nil {
		return ErrUnknownSubscription
	}

	w.suspendMu.Lock()
	delete(w.suspended, id)
	w.suspendMu.Unlock()
	return nil
}

func (w *NetworkWatcher) isSuspended(id string) bool {
	w.suspendMu.Lock()
	defer w.suspendMu.Unlock()
	return w.suspended[id]
}

// handleEvent may be called from an OS-owned thread; it must not block.
func (w *NetworkWatcher) handleEvent(e netmon.Event) {
	metrics.NetworkEvents.WithLabelValues(e.Source, string(e.Kind)).Inc()
	if w.history != nil {
		w.history.Add(e)
	}

	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	w.pending = append(w.pending, e)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *NetworkWatcher) flush() {
	// Skip if watcher is stopped (timer may fire after Stop)
	if w.Context().Err() != nil {
		return
	}

	w.timerMu.Lock()
	events := w.pending
	w.pending = nil
	w.timerMu.Unlock()

	if len(events) == 0 {
		return
	}

	var notified int
	for _, sub := range w.GetAllSubscriptions() {
		if w.isSuspended(sub.ID) {
			continue
		}
		n := Notification{Method: "network.changed", Params: networkChangedParams{
			ID:     sub.ID,
			Events: events,
		}}
		if err := sub.Notifier.Notify(w.Context(), n); err != nil {
			slog.Debug("failed to notify subscriber", "watchId", sub.ID, "error", err)
			continue
		}
		notified++
	}

	metrics.NotificationsSent.WithLabelValues("network.changed").Add(float64(notified))
	slog.Debug("notified network change", "events", len(events), "subscribers", notified)
}

type networkChangedParams struct {
	ID     string         `json:"id"`
	Events []netmon.Event `json:"events"`
}
