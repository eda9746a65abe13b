package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/DarshanCode2005/resume-parser/internal/batch"
	"github.com/DarshanCode2005/resume-parser/internal/config"
	"github.com/DarshanCode2005/resume-parser/internal/export"
	"github.com/DarshanCode2005/resume-parser/internal/extract"
	"github.com/DarshanCode2005/resume-parser/internal/mcp"
	"github.com/DarshanCode2005/resume-parser/internal/ner"
	"github.com/DarshanCode2005/resume-parser/internal/parser"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering with MCP protocol
		log.SetOutput(os.Stderr)
		// Reduce log verbosity in stdio mode unless debug is enabled
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// newRecognizer builds the configured NER backend
func newRecognizer(cfg *config.Config) ner.Recognizer {
	switch cfg.NERBackend {
	case config.NERLLM:
		return ner.NewLLMRecognizer(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	case config.NERNone:
		return &ner.Static{}
	default:
		return ner.NewProseRecognizer()
	}
}

// runCLIMode performs a one-shot parse of a single file or a directory
func runCLIMode(ctx context.Context, cfg *config.Config, p *parser.Parser,
	exporter *export.Service, batcher *batch.Processor,
) error {
	if cfg.InputPath != "" {
		return runSingleFile(ctx, cfg, p, exporter)
	}

	summary, err := batcher.ProcessDirectory(ctx, cfg.ResumeDirectory, cfg.OutputDirectory)
	if err != nil {
		return err
	}

	log.Printf("Batch complete: %d processed, %d succeeded, %d failed",
		summary.Processed, summary.Succeeded, summary.Failed)
	return nil
}

// runSingleFile parses one resume and writes the record. Unlike batch mode,
// any failure aborts the run.
func runSingleFile(ctx context.Context, cfg *config.Config, p *parser.Parser, exporter *export.Service) error {
	resume, err := p.Parse(ctx, cfg.InputPath)
	if err != nil {
		return fmt.Errorf("parse %s: %w", cfg.InputPath, err)
	}

	outPath := cfg.OutputPath
	if outPath == "" {
		stem := strings.TrimSuffix(cfg.InputPath, filepath.Ext(cfg.InputPath))
		outPath = fmt.Sprintf("%s_parsed.%s", stem, cfg.OutputFormat)
	}

	if err := exporter.Write(resume, outPath, cfg.OutputFormat); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	log.Printf("Successfully parsed: %s -> %s", cfg.InputPath, outPath)
	return nil
}

// runServerMode handles MCP server mode execution with signal handling
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) {
	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start server in a goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		// Wait for server to shutdown
		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runStdioMode handles stdio MCP mode execution
func runStdioMode(ctx context.Context, _ context.CancelFunc, server *mcp.Server) {
	// In stdio mode, the parent process controls our lifecycle
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load a local .env before flag/env parsing; absence is fine
	_ = godotenv.Load()

	// Load configuration from flags
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging based on mode
	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && !cfg.IsStdioMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	// Assemble the pipeline
	extractor := extract.NewService(cfg.MaxFileSize)
	recognizer := newRecognizer(cfg)
	resumeParser := parser.NewParser(extractor, recognizer)
	exporter := export.NewService()
	batcher := batch.NewProcessor(resumeParser, exporter, cfg.OutputFormat, nil)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsCLIMode() {
		if err := runCLIMode(ctx, cfg, resumeParser, exporter, batcher); err != nil {
			log.Fatalf("Run failed: %v", err)
		}
		return
	}

	// MCP serving modes
	server, err := mcp.NewServer(cfg, resumeParser, batcher)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	if cfg.IsServerMode() {
		runServerMode(ctx, cancel, server)
	} else {
		runStdioMode(ctx, cancel, server)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Resume Parser\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
