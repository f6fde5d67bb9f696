package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/localtools/localmcp/internal/config"
	"github.com/localtools/localmcp/internal/filemcp"
	"github.com/localtools/localmcp/internal/logging"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag before flag parsing so it works bare
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("File MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	var (
		configPath = flag.String("config", "", "path to config file (default: .vscode/mcp.json)")
		rootDir    = flag.String("root-dir", "", "directory to serve (overrides config)")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		logFile    = flag.String("log-file", "", "log to file instead of stderr")
	)
	flag.Parse()

	// stdout is reserved for the MCP protocol; all logging goes to
	// stderr or the log file.
	logger, err := logging.New(logging.Options{
		Level:  *logLevel,
		File:   *logFile,
		Prefix: "file-mcp",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	cfg, err := config.LoadFileConfig(*configPath)
	if err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}
	if *rootDir != "" {
		cfg.RootDir = *rootDir
	}

	server, err := filemcp.NewServer(cfg, logger)
	if err != nil {
		logger.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errChan:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
