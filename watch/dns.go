package watch

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/netwatch/server/metrics"
)

const dnsDebounceInterval = 100 * time.Millisecond

// DNSWatcher watches resolver configuration files via fsnotify and
// notifies subscribers. Watches are ref-counted per path so a file is
// only watched while someone cares about it.
type DNSWatcher struct {
	*BaseWatcher
	watcher *fsnotify.Watcher

	pathMu       sync.RWMutex
	pathToIDs    map[string][]string // path -> subscription IDs
	idToPath     map[string]string   // subscription ID -> path
	pathRefCount map[string]int

	timerMu  sync.Mutex
	timerMap map[string]*time.Timer
}

func NewDNSWatcher() *DNSWatcher {
	return &DNSWatcher{
		BaseWatcher:  NewBaseWatcher("d"),
		pathToIDs:    make(map[string][]string),
		idToPath:     make(map[string]string),
		pathRefCount: make(map[string]int),
		timerMap:     make(map[string]*time.Timer),
	}
}

func (w *DNSWatcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	go w.eventLoop()
	slog.Info("DNSWatcher started")
	return nil
}

func (w *DNSWatcher) Stop() {
	w.Cancel()
	if w.watcher != nil {
		w.watcher.Close()
	}

	// Cancel any pending debounce timers
	w.timerMu.Lock()
	for _, timer := range w.timerMap {
		timer.Stop()
	}
	w.timerMap = make(map[string]*time.Timer)
	w.timerMu.Unlock()

	slog.Info("DNSWatcher stopped")
}

func (w *DNSWatcher) Subscribe(path string, notifier Notifier) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	id := w.GenerateID()
	sub := &Subscription{ID: id, Notifier: notifier}

	// Lock order: pathMu → subMu (consistent with Unsubscribe)
	w.pathMu.Lock()

	// Start fsnotify watch if first subscriber for this path
	if w.pathRefCount[path] == 0 {
		if err := w.watcher.Add(path); err != nil {
			w.pathMu.Unlock()
			return "", err
		}
		slog.Debug("started watching resolver file", "path", path)
	}

	w.pathToIDs[path] = append(w.pathToIDs[path], id)
	w.idToPath[id] = path
	w.pathRefCount[path]++
	w.pathMu.Unlock()

	w.AddSubscription(sub)
	metrics.ActiveSubscriptions.WithLabelValues("dns").Inc()

	return id, nil
}

// Unsubscribe overrides BaseWatcher.Unsubscribe to also clean up fsnotify watches.
func (w *DNSWatcher) Unsubscribe(id string) {
	w.pathMu.Lock()
	path, ok := w.idToPath[id]
	if ok {
		w.removePathMapping(id, path)
	}
	w.pathMu.Unlock()

	if w.RemoveSubscription(id) != nil {
		metrics.ActiveSubscriptions.WithLabelValues("dns").Dec()
	}
}

// removePathMapping removes path tracking. Caller must hold pathMu.
func (w *DNSWatcher) removePathMapping(id, path string) {
	delete(w.idToPath, id)

	ids := w.pathToIDs[path]
	for i, v := range ids {
		if v == id {
			w.pathToIDs[path] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(w.pathToIDs[path]) == 0 {
		delete(w.pathToIDs, path)
	}

	w.pathRefCount[path]--
	if w.pathRefCount[path] == 0 {
		w.watcher.Remove(path)
		delete(w.pathRefCount, path)
		slog.Debug("stopped watching resolver file", "path", path)
	}
}

func (w *DNSWatcher) eventLoop() {
	for {
		select {
		case <-w.Context().Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("fsnotify error", "error", err)
		}
	}
}

func (w *DNSWatcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// Resolver files are commonly replaced by rename; re-arm the watch
	// so the new file keeps being observed.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.pathMu.RLock()
		watched := w.pathRefCount[path] > 0
		w.pathMu.RUnlock()
		if watched {
			if err := w.watcher.Add(path); err != nil {
				slog.Debug("failed to re-arm resolver watch", "path", path, "error", err)
			}
		}
	}

	w.timerMu.Lock()
	if timer, exists := w.timerMap[path]; exists {
		timer.Stop()
	}
	w.timerMap[path] = time.AfterFunc(dnsDebounceInterval, func() {
		w.notifyPath(path)
		w.timerMu.Lock()
		delete(w.timerMap, path)
		w.timerMu.Unlock()
	})
	w.timerMu.Unlock()
}

func (w *DNSWatcher) notifyPath(path string) {
	// Skip if watcher is stopped (timer may fire after Stop)
	if w.Context().Err() != nil {
		return
	}

	w.pathMu.RLock()
	ids := make([]string, len(w.pathToIDs[path]))
	copy(ids, w.pathToIDs[path])
	w.pathMu.RUnlock()

	if len(ids) == 0 {
		return
	}

	var notified int
	for _, id := range ids {
		sub := w.GetSubscription(id)
		if sub == nil {
			continue
		}
		n := Notification{Method: "dns.changed", Params: dnsChangedParams{
			ID:   sub.ID,
			Path: path,
		}}
		if err := sub.Notifier.Notify(w.Context(), n); err != nil {
			slog.Debug("failed to notify subscriber", "watchId", sub.ID, "error", err)
			continue
		}
		notified++
	}

	metrics.NotificationsSent.WithLabelValues("dns.changed").Add(float64(notified))
	slog.Debug("notified resolver change", "path", path, "subscribers", notified)
}

type dnsChangedParams struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}
