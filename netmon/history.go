package netmon

import "sync"

// History is a fixed-capacity ring of recent events, newest first on
// read. Safe for concurrent use.
type History struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{events: make([]Event, capacity)}
}

func (h *History) Add(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events[h.next] = e
	h.next++
	if h.next == len(h.events) {
		h.next = 0
		h.full = true
	}
}

// List returns up to limit events, newest first. limit <= 0 means all.
func (h *History) List(limit int) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.listLocked(limit)
}

func (h *History) listLocked(limit int) []Event {
	size := h.next
	if h.full {
		size = len(h.events)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]Event, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := h.next - i
		if idx < 0 {
			idx += len(h.events)
		}
		out = append(out, h.events[idx])
	}
	return out
}

// Resize changes the ring capacity, keeping the newest events that fit.
func (h *History) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if capacity == len(h.events) {
		return
	}

	kept := h.listLocked(capacity) // newest first
	events := make([]Event, capacity)
	for i, e := range kept {
		events[len(kept)-1-i] = e
	}

	h.events = events
	h.next = len(kept) % capacity
	h.full = len(kept) == capacity
}

// Cap returns the ring capacity.
func (h *History) Cap() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.full {
		return len(h.events)
	}
	return h.next
}
