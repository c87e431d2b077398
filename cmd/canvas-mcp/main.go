package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/canvas-tools-mcp/internal/config"
	"github.com/ironsheep/canvas-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "canvas-tools-mcp - MCP server for raster canvas editing")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: canvas-mcp [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment variables:")
	fmt.Fprintf(out, "  %s=path          YAML config file (same as --config)\n", config.EnvConfig)
	fmt.Fprintf(out, "  %s=800            Default canvas width\n", config.EnvWidth)
	fmt.Fprintf(out, "  %s=600           Default canvas height\n", config.EnvHeight)
	fmt.Fprintf(out, "  %s=#ffffff   Default background color\n", config.EnvBackground)
	fmt.Fprintf(out, "  %s=50     Undo steps kept per canvas\n", config.EnvHistoryDepth)
	fmt.Fprintf(out, "  %s=debug      Log level: debug, info, warn, error\n", config.EnvLogLevel)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(out, "Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	configPath := flag.String("config", os.Getenv(config.EnvConfig), "path to YAML config file")
	showVersion := flag.Bool("version", false, "print version information")
	flag.BoolVar(showVersion, "v", false, "print version information (shorthand)")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("canvas-tools-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "canvas-mcp: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()

	// Logging goes to stderr; stdout is for MCP protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Debug("canvas MCP server starting",
		"version", Version, "built", BuildTime, "commit", GitCommit,
		"width", cfg.Canvas.Width, "height", cfg.Canvas.Height, "history_depth", cfg.History.Depth)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, Version, logger)
	if err != nil {
		logger.Error("server setup failed", "error", err)
		os.Exit(1)
	}
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
