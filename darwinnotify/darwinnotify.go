// Package darwinnotify is a thin binding to the Darwin notify(3) API.
//
// It exposes notification registration via notify_register_dispatch:
// a handler is registered against a named notification and invoked on a
// private dispatch queue each time the notification fires. Token
// allocation, delivery ordering, and the execution context of the
// handler all belong to the operating system; this package neither
// interprets nor recovers from platform errors, it returns them
// unchanged as Status values.
//
// On non-darwin platforms Register returns ErrUnsupported.
package darwinnotify

import (
	"errors"
	"strconv"
)

// NetworkChange is the notification posted by configd when host network
// state changes (kNotifySCNetworkChange).
//   - https://developer.apple.com/documentation/darwinnotify/knotifyscnetworkchange/
const NetworkChange = "com.apple.system.config.network_change"

var (
	// ErrNilHandler is returned by Register when no handler is given.
	ErrNilHandler = errors.New("darwinnotify: nil handler")

	// ErrUnsupported is returned by Register on platforms without the
	// Darwin notify subsystem.
	ErrUnsupported = errors.New("darwinnotify: not supported on this platform")
)

// Handler is invoked each time the registered notification fires. The
// token identifies the registration; the goroutine it runs on is owned
// by libdispatch, not by this package.
type Handler func(token int)

// Status is a notify(3) status code. The zero value is NOTIFY_STATUS_OK;
// any other value is a platform failure propagated unchanged.
type Status uint32

const (
	StatusOK Status = iota
	StatusInvalidName
	StatusInvalidToken
	StatusInvalidPort
	StatusInvalidFile
	StatusInvalidSignal
	StatusInvalidRequest
	StatusNotAuthorized
	StatusOptDisable
	StatusServerNotFound
	StatusNullInput
)

var statusNames = map[Status]string{
	StatusOK:             "ok",
	StatusInvalidName:    "invalid name",
	StatusInvalidToken:   "invalid token",
	StatusInvalidPort:    "invalid port",
	StatusInvalidFile:    "invalid file",
	StatusInvalidSignal:  "invalid signal",
	StatusInvalidRequest: "invalid request",
	StatusNotAuthorized:  "not authorized",
	StatusOptDisable:     "notifications disabled",
	StatusServerNotFound: "server not found",
	StatusNullInput:      "null input",
}

func (s Status) Error() string {
	if name, ok := statusNames[s]; ok {
		return "darwinnotify: " + name
	}
	return "darwinnotify: status " + strconv.FormatUint(uint64(s), 10)
}
