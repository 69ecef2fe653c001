package ws

import (
	"context"

	"github.com/netwatch/server/netmon"
	"github.com/netwatch/server/rpc"
	"github.com/sourcegraph/jsonrpc2"
)

func (h *rpcMethodHandler) handleDNSSubscribe(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.DNSSubscribeParams
	if req.Params != nil {
		if err := unmarshalParams(req, &params); err != nil {
			h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
			return
		}
	}

	path := params.Path
	if path == "" {
		files := h.settingsStore.Get().ResolvFiles
		if len(files) == 0 {
			h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "no resolver files configured")
			return
		}
		path = files[0]
	}

	notifier := h.state.getNotifier()
	id, err := h.dnsWatcher.Subscribe(path, notifier)
	if err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, err.Error())
		return
	}
	h.state.trackSubscription(id, h.dnsWatcher)
	h.log.Debug("subscribed", "watcher", "dns", "watchId", id, "path", path)

	// Nameserver parse failures are not fatal; the watch itself stands.
	nameservers, err := netmon.Nameservers(path)
	if err != nil {
		h.log.Debug("failed to parse nameservers", "path", path, "error", err)
	}

	result := rpc.DNSSubscribeResult{ID: id, Path: path, Nameservers: nameservers}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send dns subscribe response", "error", err)
	}
}
