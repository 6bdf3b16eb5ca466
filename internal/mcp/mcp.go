// Package mcp implements the Model Context Protocol server for the solver.
//
// The MCP server exposes the solving pipeline and the shape formula registry
// as tools, so MCP-compatible agents can solve expressions and compute
// geometric quantities without an HTTP layer.
package mcp

import (
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/sakshiSakshi77/AI-powered-MathSolver/internal/solver"
)

// Server wraps the MCP server around the solving pipeline.
type Server struct {
	mcpServer *mcpserver.MCPServer
	pipeline  *solver.Pipeline
	logger    *slog.Logger
}

// New creates and configures a new MCP server with all tools registered.
func New(pipeline *solver.Pipeline, logger *slog.Logger, version string) *Server {
	s := &Server{
		pipeline: pipeline,
		logger:   logger,
	}

	s.mcpServer = mcpserver.NewMCPServer(
		"mathsolver",
		version,
		mcpserver.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// MCPServer returns the underlying mcp-go server for transport setup.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcpServer)
}
