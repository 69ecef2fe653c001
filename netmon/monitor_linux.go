package netmon

import (
	"context"
	"log/slog"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

const netlinkBackend = "netlink"

func newPlatformMonitor(time.Duration) Monitor {
	return &netlinkMonitor{}
}

// netlinkMonitor subscribes to rtnetlink multicast groups for link,
// address, and route changes.
type netlinkMonitor struct{}

func (m *netlinkMonitor) Backend() string { return netlinkBackend }

func (m *netlinkMonitor) Start(ctx context.Context, fn func(Event)) error {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_ROUTE)
	if err != nil {
		return err
	}

	addr := &unix.SockaddrNetlink{
		Family: unix.AF_NETLINK,
		Groups: unix.RTMGRP_LINK |
			unix.RTMGRP_IPV4_IFADDR | unix.RTMGRP_IPV6_IFADDR |
			unix.RTMGRP_IPV4_ROUTE | unix.RTMGRP_IPV6_ROUTE,
	}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return err
	}

	// Closing the socket unblocks the read loop.
	context.AfterFunc(ctx, func() {
		unix.Close(fd)
	})

	go m.readLoop(ctx, fd, fn)
	return nil
}

// netlinkReadBufSize holds a full rtnetlink burst; route dumps on busy
// hosts overflow smaller reads.
const netlinkReadBufSize = 32 * 1024

func (m *netlinkMonitor) readLoop(ctx context.Context, fd int, fn func(Event)) {
	buf := make([]byte, netlinkReadBufSize)
	for {
		n, _, err := unix.Recvfrom(fd, buf, 0)
		if err != nil {
			if ctx.Err() == nil {
				slog.Error("netlink read failed", "error", err)
			}
			return
		}

		msgs, err := syscall.ParseNetlinkMessage(buf[:n])
		if err != nil {
			slog.Debug("failed to parse netlink message", "error", err)
			continue
		}

		for _, msg := range msgs {
			kind, ok := kindForNetlinkType(msg.Header.Type)
			if !ok {
				continue
			}
			fn(Event{
				Kind:   kind,
				Source: netlinkBackend,
				Time:   time.Now(),
			})
		}
	}
}

func kindForNetlinkType(typ uint16) (EventKind, bool) {
	switch typ {
	case unix.RTM_NEWLINK, unix.RTM_DELLINK:
		return KindInterfaces, true
	case unix.RTM_NEWADDR, unix.RTM_DELADDR:
		return KindAddress, true
	case unix.RTM_NEWROUTE, unix.RTM_DELROUTE:
		return KindRoute, true
	}
	return "", false
}
