package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewStore_DefaultsWhenNoFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got := store.Get()
	if got.DebounceMs != Default().DebounceMs {
		t.Errorf("expected default debounce %d, got %d", Default().DebounceMs, got.DebounceMs)
	}
	if len(got.ResolvFiles) != 1 || got.ResolvFiles[0] != "/etc/resolv.conf" {
		t.Errorf("expected default resolv files, got %v", got.ResolvFiles)
	}
}

func TestNewStore_LoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	content := `{"debounce_ms":500,"poll_interval_ms":1000,"history_size":32,"resolv_files":["/run/resolv.conf"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got := store.Get()
	if got.DebounceMs != 500 {
		t.Errorf("expected debounce 500, got %d", got.DebounceMs)
	}
	if len(got.ResolvFiles) != 1 || got.ResolvFiles[0] != "/run/resolv.conf" {
		t.Errorf("expected loaded resolv files, got %v", got.ResolvFiles)
	}
}

func TestNewStore_FallsBackOnCorruptedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	if err := os.WriteFile(path, []byte(`{invalid json`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if got := store.Get(); got.DebounceMs != Default().DebounceMs {
		t.Errorf("expected default debounce %d, got %d", Default().DebounceMs, got.DebounceMs)
	}
}

func TestNewStore_FallsBackOnInvalidValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	content := `{"debounce_ms":300,"poll_interval_ms":-5,"history_size":128,"resolv_files":[]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if got := store.Get(); got.PollIntervalMs != Default().PollIntervalMs {
		t.Errorf("expected default poll interval %d, got %d", Default().PollIntervalMs, got.PollIntervalMs)
	}
}

func TestUpdate_PersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	updated := Default()
	updated.HistorySize = 64
	if err := store.Update(updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if got := reopened.Get(); got.HistorySize != 64 {
		t.Errorf("expected history size 64, got %d", got.HistorySize)
	}
}

func TestUpdate_RejectsInvalid(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	bad := Default()
	bad.HistorySize = 0
	if err := store.Update(bad); err == nil {
		t.Error("expected validation error")
	}

	if got := store.Get(); got.HistorySize != Default().HistorySize {
		t.Errorf("expected settings unchanged, got history size %d", got.HistorySize)
	}
}

type recordingListener struct {
	changes []Settings
}

func (l *recordingListener) OnSettingsChange(s Settings) {
	l.changes = append(l.changes, s)
}

func TestUpdate_NotifiesListener(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	first := &recordingListener{}
	second := &recordingListener{}
	store.AddOnChangeListener(first)
	store.AddOnChangeListener(second)

	updated := Default()
	updated.DebounceMs = 100
	if err := store.Update(updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	for _, listener := range []*recordingListener{first, second} {
		if len(listener.changes) != 1 {
			t.Fatalf("expected 1 change notification, got %d", len(listener.changes))
		}
		if listener.changes[0].DebounceMs != 100 {
			t.Errorf("expected notified debounce 100, got %d", listener.changes[0].DebounceMs)
		}
	}
}
