package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/facade"
	"github.com/jonwraymond/luacene/handle"
)

// Config configures a Server.
type Config struct {
	ServerInfo ServerInfo

	// Logger receives tool call events. Default: no-op.
	Logger *zap.Logger
}

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Server serves facade operations as MCP tools.
type Server struct {
	eng     *facade.Engine
	handles *handle.Table
	server  *mcp.Server
	log     *zap.Logger
}

// New creates a Server and registers its tools.
func New(eng *facade.Engine, cfg Config) *Server {
	if cfg.ServerInfo.Name == "" {
		cfg.ServerInfo.Name = "luacene"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Server{
		eng:     eng,
		handles: handle.NewTable(),
		server: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.ServerInfo.Name,
			Version: cfg.ServerInfo.Version,
		}, nil),
		log: cfg.Logger,
	}
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Handles returns the number of live handles held for clients.
func (s *Server) Handles() int {
	return s.handles.Len()
}

// Close releases every handle clients left open.
func (s *Server) Close() error {
	n := s.handles.Len()
	err := s.handles.Close()
	s.log.Debug("server closed", zap.Int("released", n), zap.Error(err))
	return err
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects or
// ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a streamable HTTP handler for the server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}
