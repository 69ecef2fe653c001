package darwinnotify

import "testing"

func TestStatusError(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "darwinnotify: ok"},
		{StatusInvalidName, "darwinnotify: invalid name"},
		{StatusNotAuthorized, "darwinnotify: not authorized"},
		{StatusNullInput, "darwinnotify: null input"},
		{Status(99), "darwinnotify: status 99"},
	}

	for _, tt := range tests {
		if got := tt.status.Error(); got != tt.want {
			t.Errorf("Status(%d).Error() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRegisterNilHandler(t *testing.T) {
	n, err := Register(NetworkChange, nil)
	if n != nil {
		t.Fatal("expected nil notifier")
	}
	if err == nil {
		t.Fatal("expected error for nil handler")
	}
}
