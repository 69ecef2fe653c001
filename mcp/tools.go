package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/netwatch/server/netmon"
)

var toolDefinitions = []mcp.Tool{
	mcp.NewTool("network_status",
		mcp.WithDescription("Summarize current host network state: interface count, interfaces that are up, and the most recent change event."),
	),
	mcp.NewTool("interface_list",
		mcp.WithDescription("List host network interfaces with their addresses, MTU, and link state."),
	),
	mcp.NewTool("event_history",
		mcp.WithDescription("Return recent network change events, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events to return (default all retained)"),
		),
	),
	mcp.NewTool("dns_servers",
		mcp.WithDescription("Return the nameservers listed in the configured resolver files."),
	),
}

type toolHandler func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

func (s *Server) getToolHandler(name string) (toolHandler, bool) {
	switch name {
	case "network_status":
		return s.handleNetworkStatus, true
	case "interface_list":
		return s.handleInterfaceList, true
	case "event_history":
		return s.handleEventHistory, true
	case "dns_servers":
		return s.handleDNSServers, true
	default:
		return nil, false
	}
}

func (s *Server) handleNetworkStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := netmon.TakeSnapshot()
	if err != nil {
		return InternalError(err), nil
	}

	up := 0
	for _, iface := range snap.Interfaces {
		if iface.Up {
			up++
		}
	}

	// Always return JSON for consistent parsing by the agent.
	type status struct {
		Interfaces   int           `json:"interfaces"`
		InterfacesUp int           `json:"interfaces_up"`
		RecentEvents int           `json:"recent_events"`
		LastEvent    *netmon.Event `json:"last_event,omitempty"`
	}
	st := status{
		Interfaces:   len(snap.Interfaces),
		InterfacesUp: up,
		RecentEvents: s.history.Len(),
	}
	if events := s.history.List(1); len(events) > 0 {
		st.LastEvent = &events[0]
	}

	return jsonResult(st)
}

func (s *Server) handleInterfaceList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := netmon.TakeSnapshot()
	if err != nil {
		return InternalError(err), nil
	}
	return jsonResult(snap.Interfaces)
}

func (s *Server) handleEventHistory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 0)

	events := s.history.List(limit)
	if events == nil {
		events = []netmon.Event{}
	}
	return jsonResult(events)
}

func (s *Server) handleDNSServers(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type fileServers struct {
		Path        string   `json:"path"`
		Nameservers []string `json:"nameservers,omitempty"`
		Error       string   `json:"error,omitempty"`
	}

	files := s.store.Get().ResolvFiles
	out := make([]fileServers, 0, len(files))
	for _, path := range files {
		entry := fileServers{Path: path}
		servers, err := netmon.Nameservers(path)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Nameservers = servers
		}
		out = append(out, entry)
	}

	return jsonResult(out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return InternalError(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
