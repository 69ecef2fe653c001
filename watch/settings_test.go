package watch

import (
	"testing"

	"github.com/netwatch/server/settings"
)

func newTestSettingsWatcher(t *testing.T) (*SettingsWatcher, *settings.Store) {
	t.Helper()

	store, err := settings.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	w := NewSettingsWatcher(store)
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(w.Stop)

	return w, store
}

func TestSettingsWatcher_SubscribeReturnsCurrent(t *testing.T) {
	w, _ := newTestSettingsWatcher(t)

	id, current := w.Subscribe(&fakeNotifier{})
	if id == "" {
		t.Fatal("expected non-empty subscription ID")
	}
	if current.DebounceMs != settings.Default().DebounceMs {
		t.Errorf("expected default settings, got debounce %d", current.DebounceMs)
	}
}

func TestSettingsWatcher_NotifiesOnUpdate(t *testing.T) {
	w, store := newTestSettingsWatcher(t)

	notifier := &fakeNotifier{}
	id, _ := w.Subscribe(notifier)

	updated := settings.Default()
	updated.DebounceMs = 150
	if err := store.Update(updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	waitFor(t, func() bool { return notifier.count() >= 1 })

	n, _ := notifier.last()
	if n.Method != "settings.changed" {
		t.Errorf("expected method settings.changed, got %q", n.Method)
	}
	params, ok := n.Params.(settingsChangedParams)
	if !ok {
		t.Fatalf("unexpected params type %T", n.Params)
	}
	if params.ID != id {
		t.Errorf("expected subscription ID %q, got %q", id, params.ID)
	}
	if params.Settings.DebounceMs != 150 {
		t.Errorf("expected notified debounce 150, got %d", params.Settings.DebounceMs)
	}
}
