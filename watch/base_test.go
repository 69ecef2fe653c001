package watch

import (
	"context"
	"strings"
	"sync"
	"testing"
)

// fakeNotifier records notifications for assertions.
type fakeNotifier struct {
	mu            sync.Mutex
	notifications []Notification
	err           error
}

func (f *fakeNotifier) Notify(_ context.Context, n Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications)
}

func (f *fakeNotifier) last() (Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notifications) == 0 {
		return Notification{}, false
	}
	return f.notifications[len(f.notifications)-1], true
}

func TestBaseWatcher_AddRemoveSubscription(t *testing.T) {
	b := NewBaseWatcher("test")

	sub := &Subscription{ID: "test_1"}
	b.AddSubscription(sub)

	if !b.HasSubscriptions() {
		t.Error("expected HasSubscriptions to be true")
	}

	removed := b.RemoveSubscription("test_1")
	if removed == nil {
		t.Error("expected removed subscription")
	}
	if removed.ID != "test_1" {
		t.Errorf("expected ID test_1, got %s", removed.ID)
	}

	if b.HasSubscriptions() {
		t.Error("expected HasSubscriptions to be false")
	}

	removed = b.RemoveSubscription("nonexistent")
	if removed != nil {
		t.Error("expected nil for non-existent subscription")
	}
}

func TestBaseWatcher_GenerateID(t *testing.T) {
	b := NewBaseWatcher("n")

	first := b.GenerateID()
	second := b.GenerateID()

	if !strings.HasPrefix(first, "n_") {
		t.Errorf("expected prefix n_, got %q", first)
	}
	if first == second {
		t.Error("expected unique IDs")
	}
}

func TestBaseWatcher_NotifyAll(t *testing.T) {
	b := NewBaseWatcher("test")

	good := &fakeNotifier{}
	bad := &fakeNotifier{err: context.Canceled}
	b.AddSubscription(&Subscription{ID: "test_1", Notifier: good})
	b.AddSubscription(&Subscription{ID: "test_2", Notifier: bad})

	count := b.NotifyAll("thing.changed", func(sub *Subscription) any {
		return map[string]any{"id": sub.ID}
	})

	if count != 2 {
		t.Errorf("expected 2 attempted notifications, got %d", count)
	}
	if good.count() != 1 {
		t.Errorf("expected 1 delivered notification, got %d", good.count())
	}

	n, ok := good.last()
	if !ok || n.Method != "thing.changed" {
		t.Errorf("unexpected notification: %+v", n)
	}
}
