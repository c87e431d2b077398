package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
	"github.com/ironsheep/canvas-tools-mcp/internal/config"
	"github.com/ironsheep/canvas-tools-mcp/internal/session"
)

// Name is the server name reported during the MCP handshake.
const Name = "canvas-tools-mcp"

// Server exposes canvas sessions as MCP tools.
type Server struct {
	mcp        *mcp.Server
	registry   *session.Registry
	logger     *slog.Logger
	background canvas.Color
	depth      int
}

// New creates a server with the default canvas sized from cfg.
// A nil logger discards log output.
func New(cfg *config.Config, version string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	background, err := cfg.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	s := &Server{
		registry:   session.NewRegistry(),
		logger:     logger,
		background: background,
		depth:      cfg.History.Depth,
	}
	if _, err := s.registry.Create(session.DefaultID, cfg.Canvas.Width, cfg.Canvas.Height, background, s.depth); err != nil {
		return nil, fmt.Errorf("create default canvas: %w", err)
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil)
	for _, tool := range GetToolDefinitions() {
		s.addTool(tool)
	}
	return s, nil
}

// MCP returns the underlying MCP server, for callers that supply their own
// transport.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves MCP over stdin/stdout until ctx is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP on stdio", "tools", len(GetToolDefinitions()))
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// addTool registers tool with a handler that dispatches through executeTool
// and wraps the result in MCP's content format:
//
//	{"content": [{"type": "text", "text": "<JSON result>"}]}
//
// Tool execution errors are returned as tool error results, not protocol
// errors, so the client sees the message.
func (s *Server) addTool(tool *mcp.Tool) {
	name := tool.Name
	s.mcp.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := s.executeTool(name, req.Params.Arguments)
		if err != nil {
			s.logger.Warn("tool failed", "tool", name, "error", err)
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		s.logger.Debug("tool call", "tool", name, "duration", time.Since(start))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}
