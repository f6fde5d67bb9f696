package filemcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/localtools/localmcp/internal/config"
	"github.com/localtools/localmcp/internal/fsops"
	"github.com/localtools/localmcp/internal/logging"
	"github.com/localtools/localmcp/internal/pathgate"
)

// Server wraps the MCP server with the file access dependencies.
type Server struct {
	mcp *server.MCPServer
	cfg *config.FileConfig
	fs  *fsops.FS
	log *logging.Logger
}

// NewServer builds the file server over the configured root directory.
func NewServer(cfg *config.FileConfig, log *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	gate, err := pathgate.New(pathgate.Config{
		Root:             cfg.RootDir,
		ExcludePatterns:  cfg.ExcludePatterns,
		MaxFileSize:      cfg.MaxFileSize,
		RespectGitignore: cfg.RespectGitignore,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize path gate: %w", err)
	}

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
		fs:  fsops.New(gate, cfg, log),
		log: log,
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s, nil
}

// Serve runs the server on stdio and blocks until the client disconnects.
func (s *Server) Serve() error {
	s.log.Info("file server listening",
		"name", s.cfg.ServerName,
		"version", s.cfg.ServerVersion,
		"root", s.cfg.RootDir)
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listDirectoryTool(), s.handleListDirectory)
	s.mcp.AddTool(readContentTool(), s.handleReadContent)
	s.mcp.AddTool(searchTool(), s.handleSearch)
	s.mcp.AddTool(getMetadataTool(), s.handleGetMetadata)
	s.mcp.AddTool(analyzePathTool(), s.handleAnalyzePath)
}
