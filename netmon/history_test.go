package netmon

import (
	"strconv"
	"testing"
	"time"
)

func testEvent(i int) Event {
	return Event{
		Kind:      KindInterfaces,
		Interface: "eth" + strconv.Itoa(i),
		Source:    "test",
		Time:      time.Now(),
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(4)
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d", h.Len())
	}
	if events := h.List(10); len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	h := NewHistory(4)
	for i := 0; i < 3; i++ {
		h.Add(testEvent(i))
	}

	events := h.List(0)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Interface != "eth2" {
		t.Errorf("expected newest event first, got %q", events[0].Interface)
	}
	if events[2].Interface != "eth0" {
		t.Errorf("expected oldest event last, got %q", events[2].Interface)
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(8)
	for i := 0; i < 5; i++ {
		h.Add(testEvent(i))
	}

	events := h.List(2)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Interface != "eth4" {
		t.Errorf("expected newest event first, got %q", events[0].Interface)
	}
}

func TestHistory_WrapsAtCapacity(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Add(testEvent(i))
	}

	if h.Len() != 3 {
		t.Fatalf("expected length 3, got %d", h.Len())
	}

	events := h.List(0)
	if events[0].Interface != "eth4" {
		t.Errorf("expected newest event eth4, got %q", events[0].Interface)
	}
	if events[2].Interface != "eth2" {
		t.Errorf("expected oldest retained event eth2, got %q", events[2].Interface)
	}
}

func TestHistory_MinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Add(testEvent(1))
	h.Add(testEvent(2))

	events := h.List(0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Interface != "eth2" {
		t.Errorf("expected eth2, got %q", events[0].Interface)
	}
}

func TestHistory_ResizeShrinkKeepsNewest(t *testing.T) {
	h := NewHistory(8)
	for i := 0; i < 6; i++ {
		h.Add(testEvent(i))
	}

	h.Resize(2)
	if h.Cap() != 2 {
		t.Fatalf("expected capacity 2, got %d", h.Cap())
	}

	events := h.List(0)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Interface != "eth5" || events[1].Interface != "eth4" {
		t.Errorf("expected eth5, eth4 retained, got %q, %q", events[0].Interface, events[1].Interface)
	}
}

func TestHistory_ResizeGrowKeepsOrder(t *testing.T) {
	h := NewHistory(2)
	for i := 0; i < 4; i++ {
		h.Add(testEvent(i))
	}

	h.Resize(5)
	if h.Cap() != 5 {
		t.Fatalf("expected capacity 5, got %d", h.Cap())
	}

	// Adds after growing keep wrapping correctly
	h.Add(testEvent(4))
	h.Add(testEvent(5))

	events := h.List(0)
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[0].Interface != "eth5" {
		t.Errorf("expected newest event eth5, got %q", events[0].Interface)
	}
	if events[3].Interface != "eth2" {
		t.Errorf("expected oldest retained event eth2, got %q", events[3].Interface)
	}
}

func TestHistory_ResizeMinimumCapacity(t *testing.T) {
	h := NewHistory(4)
	h.Add(testEvent(1))

	h.Resize(0)
	if h.Cap() != 1 {
		t.Fatalf("expected capacity 1, got %d", h.Cap())
	}
	events := h.List(0)
	if len(events) != 1 || events[0].Interface != "eth1" {
		t.Errorf("expected eth1 retained, got %v", events)
	}
}
