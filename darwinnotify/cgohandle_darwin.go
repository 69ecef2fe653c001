package darwinnotify

import (
	"runtime"
	"runtime/cgo"
)

// cgoHandle pins a Go value so C callbacks can reach it across the cgo
// boundary. The pinned handle is deleted once the owner is collected,
// so a Notifier keeps its handler reachable for as long as it lives.
type cgoHandle struct {
	h cgo.Handle
}

// newCgoHandle pins v and returns the owning wrapper plus the raw
// handle value to pass to C.
func newCgoHandle(v any) (*cgoHandle, uintptr) {
	if v == nil {
		return nil, 0
	}
	owner := &cgoHandle{cgo.NewHandle(v)}
	runtime.AddCleanup(owner, func(h cgo.Handle) {
		h.Delete()
	}, owner.h)
	return owner, uintptr(owner.h)
}

// handleValue returns the value pinned behind a raw handle without
// releasing it. The handle must have come from newCgoHandle.
func handleValue[T any](raw uintptr) T {
	return cgo.Handle(raw).Value().(T)
}
