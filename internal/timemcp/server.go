package timemcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/localtools/localmcp/internal/config"
	"github.com/localtools/localmcp/internal/logging"
	"github.com/localtools/localmcp/internal/timezone"
)

// melbourneZone backs the dedicated Melbourne tool and resource.
const melbourneZone = "Australia/Melbourne"

// Server wraps the MCP server with the timezone service.
type Server struct {
	mcp *server.MCPServer
	cfg *config.TimeConfig
	tz  *timezone.Service
	log *logging.Logger
}

// NewServer builds the time server.
func NewServer(cfg *config.TimeConfig, log *logging.Logger) (*Server, error) {
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	s := &Server{
		mcp: mcpServer,
		cfg: cfg,
		tz:  timezone.New(cfg, log),
		log: log,
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s, nil
}

// Serve runs the server on stdio and blocks until the client disconnects.
func (s *Server) Serve() error {
	s.log.Info("time server listening",
		"name", s.cfg.ServerName,
		"version", s.cfg.ServerVersion,
		"default_timezone", s.cfg.DefaultTimezone)
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(currentTimeTool(), s.handleCurrentTime)
	s.mcp.AddTool(convertTimeTool(), s.handleConvertTime)
	s.mcp.AddTool(timezoneInfoTool(), s.handleTimezoneInfo)
	s.mcp.AddTool(listTimezonesTool(), s.handleListTimezones)
	s.mcp.AddTool(melbourneTimeTool(), s.handleMelbourneTime)
}
