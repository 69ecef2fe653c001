package darwinnotify

/*
#cgo darwin CFLAGS: -x objective-c -fno-objc-arc
#cgo darwin LDFLAGS: -lobjc
#include <stdlib.h>
#import "notify_darwin.h"
*/
import "C"

import "unsafe"

// Notifier is a live registration with the Darwin notification center.
// The caller owns its lifetime and must call Cancel to stop delivery.
type Notifier struct {
	token   int
	handler *cgoHandle
}

// Register registers handler against the named notification using
// notify_register_dispatch:
//   - https://developer.apple.com/documentation/darwinnotify/notify_register_dispatch
//
// The handler runs on a private serial dispatch queue owned by the OS.
// A non-zero platform status is returned unchanged as a Status error.
func Register(name string, handler Handler) (*Notifier, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var token C.int
	owner, raw := newCgoHandle(handler)
	status := Status(C.notifyRegisterDispatch(cname, &token, C.uintptr_t(raw)))
	if status != StatusOK {
		return nil, status
	}
	return &Notifier{
		token:   int(token),
		handler: owner,
	}, nil
}

//export notifyDeliver
func notifyDeliver(handle C.uintptr_t, token C.int) {
	if handle == 0 {
		return
	}
	handler := handleValue[Handler](uintptr(handle))
	handler(int(token))
}

// Token returns the opaque registration token assigned by the OS.
func (n *Notifier) Token() int { return n.token }

// Suspend pauses delivery for this registration.
//   - https://developer.apple.com/documentation/darwinnotify/notify_suspend/
func (n *Notifier) Suspend() {
	C.notify_suspend(C.int(n.token))
}

// Resume undoes a matching Suspend.
//   - https://developer.apple.com/documentation/darwinnotify/notify_resume/
func (n *Notifier) Resume() {
	C.notify_resume(C.int(n.token))
}

// Cancel cancels the registration and releases the token.
//   - https://developer.apple.com/documentation/darwinnotify/notify_cancel/
func (n *Notifier) Cancel() {
	C.notify_cancel(C.int(n.token))
}
