// Package mcp implements a stdio MCP server for AI agent integration.
// It exposes read-only host network state tools accessible to agents
// via --mcp-config.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/netwatch/server/netmon"
	"github.com/netwatch/server/settings"
)

type Server struct {
	history *netmon.History
	store   *settings.Store
}

func NewServer(history *netmon.History, store *settings.Store) *Server {
	return &Server{history: history, store: store}
}

// Run starts the stdio JSON-RPC 2.0 loop.
func (s *Server) Run(ctx context.Context) error {
	return s.run(ctx, os.Stdin, os.Stdout)
}

func (s *Server) run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// 1MB buffer: the default 64KB is sufficient for current payloads,
	// but MCP doesn't define a max message size.
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			writeJSONRPCError(w, nil, -32700, "Parse error")
			continue
		}

		// Notifications (no id) don't need a response per JSON-RPC 2.0 spec
		if req.ID == nil {
			slog.Debug("received MCP notification", "method", req.Method)
			continue
		}

		s.handleRequest(ctx, w, &req)
	}

	return scanner.Err()
}

func (s *Server) handleRequest(ctx context.Context, w io.Writer, req *jsonRPCRequest) {
	switch req.Method {
	case "initialize":
		writeJSONRPCResult(w, req.ID, initializeResult{
			ProtocolVersion: "2024-11-05",
			Capabilities: capabilities{
				Tools: &toolsCap{},
			},
			ServerInfo: serverInfo{
				Name:    "netwatch",
				Version: "1.0.0",
			},
		})
	case "tools/list":
		writeJSONRPCResult(w, req.ID, toolsListResult{Tools: toolDefinitions})
	case "tools/call":
		s.handleToolCall(ctx, w, req)
	default:
		writeJSONRPCError(w, req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleToolCall(ctx context.Context, w io.Writer, req *jsonRPCRequest) {
	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		writeJSONRPCError(w, req.ID, -32602, "Invalid params")
		return
	}

	handler, ok := s.getToolHandler(params.Name)
	if !ok {
		writeJSONRPCError(w, req.ID, -32602, fmt.Sprintf("Unknown tool: %s", params.Name))
		return
	}

	var args map[string]any
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			writeJSONRPCResult(w, req.ID, ValidationError("arguments must be an object"))
			return
		}
	}
	toolReq := mcp.CallToolRequest{}
	toolReq.Params.Name = params.Name
	toolReq.Params.Arguments = args

	result, err := handler(ctx, toolReq)
	if err != nil {
		slog.Error("tool call failed", "tool", params.Name, "error", err)
		writeJSONRPCResult(w, req.ID, InternalError(err))
		return
	}

	writeJSONRPCResult(w, req.ID, result)
}

// --- JSON-RPC 2.0 types ---

type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *rpcError   `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSONRPCResult(w io.Writer, id json.RawMessage, result interface{}) {
	resp := jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("failed to marshal JSON-RPC result", "error", err)
		writeJSONRPCError(w, id, -32603, "Internal error: failed to marshal result")
		return
	}
	fmt.Fprintf(w, "%s\n", data)
}

func writeJSONRPCError(w io.Writer, id json.RawMessage, code int, message string) {
	resp := jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		// Last resort: log and write a hardcoded error response
		slog.Error("failed to marshal JSON-RPC error", "error", err)
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error"}}`+"\n")
		return
	}
	fmt.Fprintf(w, "%s\n", data)
}

// --- MCP protocol types ---

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    capabilities `json:"capabilities"`
	ServerInfo      serverInfo   `json:"serverInfo"`
}

type capabilities struct {
	Tools *toolsCap `json:"tools,omitempty"`
}

type toolsCap struct{}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type toolsListResult struct {
	Tools []mcp.Tool `json:"tools"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}
