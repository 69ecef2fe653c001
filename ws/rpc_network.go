package ws

import (
	"context"
	"errors"

	"github.com/netwatch/server/netmon"
	"github.com/netwatch/server/rpc"
	"github.com/netwatch/server/watch"
	"github.com/sourcegraph/jsonrpc2"
)

func (h *rpcMethodHandler) handleNetworkSubscribe(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	notifier := h.state.getNotifier()
	id := h.networkWatcher.Subscribe(notifier)
	h.state.trackSubscription(id, h.networkWatcher)
	h.log.Debug("subscribed", "watcher", "network", "watchId", id)

	// The initial snapshot lets clients render before the first change.
	var interfaces []netmon.InterfaceState
	if snap, err := netmon.TakeSnapshot(); err == nil {
		interfaces = snap.Interfaces
	} else {
		h.log.Error("failed to take interface snapshot", "error", err)
	}

	result := rpc.NetworkSubscribeResult{ID: id, Interfaces: interfaces}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send network subscribe response", "error", err)
	}
}

func (h *rpcMethodHandler) handleNetworkSuspend(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.NetworkSuspendParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	if err := h.networkWatcher.Suspend(params.ID); err != nil {
		h.replyNetworkSubscriptionError(ctx, conn, req, err)
		return
	}
	h.log.Debug("suspended", "watcher", "network", "watchId", params.ID)

	if err := conn.Reply(ctx, req.ID, struct{}{}); err != nil {
		h.log.Error("failed to send network suspend response", "error", err)
	}
}

func (h *rpcMethodHandler) handleNetworkResume(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.NetworkResumeParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	if err := h.networkWatcher.Resume(params.ID); err != nil {
		h.replyNetworkSubscriptionError(ctx, conn, req, err)
		return
	}
	h.log.Debug("resumed", "watcher", "network", "watchId", params.ID)

	if err := conn.Reply(ctx, req.ID, struct{}{}); err != nil {
		h.log.Error("failed to send network resume response", "error", err)
	}
}

func (h *rpcMethodHandler) replyNetworkSubscriptionError(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, err error) {
	if errors.Is(err, watch.ErrUnknownSubscription) {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, err.Error())
		return
	}
	h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInternalError, err.Error())
}

func (h *rpcMethodHandler) handleNetworkInterfaces(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	snap, err := netmon.TakeSnapshot()
	if err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInternalError, err.Error())
		return
	}

	result := rpc.NetworkInterfacesResult{Taken: snap.Taken, Interfaces: snap.Interfaces}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send network interfaces response", "error", err)
	}
}

func (h *rpcMethodHandler) handleNetworkHistory(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.NetworkHistoryParams
	if req.Params != nil {
		if err := unmarshalParams(req, &params); err != nil {
			h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
			return
		}
	}

	events := h.history.List(params.Limit)
	if events == nil {
		events = []netmon.Event{}
	}

	result := rpc.NetworkHistoryResult{Events: events}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send network history response", "error", err)
	}
}
