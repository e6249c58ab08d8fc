// Package server dispatches MCP requests read from a Content-Length framed
// stream to the format and lint executors.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"gdscriptmcp/internal/executor"
	"gdscriptmcp/internal/paths"
	"gdscriptmcp/internal/protocol"
)

// DefaultProtocolVersion is echoed by initialize when the client names none.
const DefaultProtocolVersion = "2024-11-05"

// Tools runs the two advertised tools.
type Tools interface {
	Format(ctx context.Context, args executor.Arguments) (executor.FormatResult, error)
	Lint(ctx context.Context, args executor.Arguments) (executor.LintResult, error)
}

type Server struct {
	tools   Tools
	version string
	log     logr.Logger
}

func New(tools Tools, version string, log logr.Logger) *Server {
	return &Server{tools: tools, version: version, log: log}
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// toolResult is the tools/call result. Tool failures are reported here with
// IsError set rather than as JSON-RPC errors.
type toolResult struct {
	IsError           bool          `json:"isError"`
	Content           []textContent `json:"content"`
	StructuredContent any           `json:"structuredContent"`
}

func newToolResult(isError bool, text string, structured any) toolResult {
	return toolResult{
		IsError:           isError,
		Content:           []textContent{{Type: "text", Text: text}},
		StructuredContent: structured,
	}
}

// Serve answers requests from r on w until r is exhausted. A malformed frame
// ends the session like a clean close; only write failures are returned.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	for {
		body, err := protocol.ReadMessage(reader)
		if errors.Is(err, io.EOF) {
			s.log.V(1).Info("input closed")
			return nil
		}
		if err != nil {
			s.log.Error(err, "failed to read MCP message")
			return nil
		}

		resp, ok := s.Handle(ctx, body)
		if !ok {
			continue
		}
		if err := protocol.WriteMessage(writer, resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// Handle routes a single message body. ok is false when nothing should be
// sent back: notifications and bodies that are not requests.
func (s *Server) Handle(ctx context.Context, body json.RawMessage) (resp protocol.Response, ok bool) {
	req, valid := protocol.ParseRequest(body)
	if !valid || !req.HasID {
		return protocol.Response{}, false
	}
	params := objectFields(req.Params)
	s.log.V(1).Info("request", "method", req.Method)

	switch req.Method {
	case "initialize":
		version, found := stringField(params, "protocolVersion")
		if !found {
			version = DefaultProtocolVersion
		}
		return protocol.Success(req.ID, map[string]any{
			"protocolVersion": version,
			"capabilities": map[string]any{
				"tools": map[string]any{"listChanged": false},
			},
			"serverInfo": map[string]any{
				"name":    paths.AppName,
				"version": s.version,
			},
		}), true

	case "ping":
		return protocol.Success(req.ID, map[string]any{}), true

	case "tools/list":
		return protocol.Success(req.ID, map[string]any{"tools": toolDefinitions()}), true

	case "tools/call":
		return s.handleToolCall(ctx, req.ID, params), true

	default:
		return protocol.Failure(req.ID, protocol.CodeMethodNotFound, "Method not found"), true
	}
}

func (s *Server) handleToolCall(ctx context.Context, id json.RawMessage, params map[string]json.RawMessage) protocol.Response {
	name, _ := stringField(params, "name")
	args, ok := executor.ParseArguments(params["arguments"])
	if !ok {
		return protocol.Failure(id, protocol.CodeInvalidParams, "`arguments` must be a JSON object")
	}

	switch name {
	case ToolFormat:
		res, err := s.tools.Format(ctx, args)
		if err != nil {
			s.log.Info("format call rejected", "error", err.Error())
			return protocol.Success(id, newToolResult(true, executor.FormatErrorSummary, executor.FormatErrorPayload(err)))
		}
		return protocol.Success(id, newToolResult(!res.Success, res.Summary(), res.Payload()))

	case ToolLint:
		res, err := s.tools.Lint(ctx, args)
		if err != nil {
			s.log.Info("lint call rejected", "error", err.Error())
			return protocol.Success(id, newToolResult(true, err.Error(), executor.LintErrorPayload()))
		}
		return protocol.Success(id, newToolResult(!res.Success, res.Summary(), res.Payload()))

	default:
		return protocol.Failure(id, protocol.CodeInvalidParams, "Unknown tool name")
	}
}

// objectFields returns the members of raw, or nil when raw is absent or not
// an object.
func objectFields(raw json.RawMessage) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return nil
	}
	return fields
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, found := fields[key]
	if !found {
		return "", false
	}
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil || value == nil {
		return "", false
	}
	return *value, true
}
