package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// Embed the IANA database so zones load on hosts without tzdb files.
	_ "time/tzdata"

	"github.com/localtools/localmcp/internal/config"
	"github.com/localtools/localmcp/internal/logging"
	"github.com/localtools/localmcp/internal/timemcp"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag before flag parsing so it works bare
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("Time MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	var (
		configPath = flag.String("config", "", "path to config file (default: ./config.json)")
		timeZone   = flag.String("timezone", "", "default timezone (overrides config)")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		logFile    = flag.String("log-file", "", "log to file instead of stderr")
	)
	flag.Parse()

	// stdout is reserved for the MCP protocol; all logging goes to
	// stderr or the log file.
	logger, err := logging.New(logging.Options{
		Level:  *logLevel,
		File:   *logFile,
		Prefix: "time-mcp",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	cfg, err := config.LoadTimeConfig(*configPath)
	if err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}
	if *timeZone != "" {
		cfg.DefaultTimezone = *timeZone
	}

	server, err := timemcp.NewServer(cfg, logger)
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
