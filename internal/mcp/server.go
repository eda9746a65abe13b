// Package mcp exposes the resume parser as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/DarshanCode2005/resume-parser/internal/batch"
	"github.com/DarshanCode2005/resume-parser/internal/config"
	"github.com/DarshanCode2005/resume-parser/internal/extract"
	"github.com/DarshanCode2005/resume-parser/internal/parser"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	parser    *parser.Parser
	batcher   *batch.Processor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, p *parser.Parser, batcher *batch.Processor) (*Server, error) {
	if p == nil {
		return nil, fmt.Errorf("parser cannot be nil")
	}
	if batcher == nil {
		return nil, fmt.Errorf("batcher cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		parser:    p,
		batcher:   batcher,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	parseFileTool := mcp.NewTool(
		"resume_parse_file",
		mcp.WithDescription("Parse a resume file and return contact details, sections and skills as JSON"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the resume file (.pdf, .docx, .doc or .txt)"),
		),
	)
	s.mcpServer.AddTool(parseFileTool, s.handleParseFile)

	validateFileTool := mcp.NewTool(
		"resume_validate_file",
		mcp.WithDescription("Validate that a file is a readable resume input"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the resume file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	scanDirectoryTool := mcp.NewTool(
		"resume_scan_directory",
		mcp.WithDescription("List supported resume files in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory path to scan (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(scanDirectoryTool, s.handleScanDirectory)

	batchDirectoryTool := mcp.NewTool(
		"resume_batch_directory",
		mcp.WithDescription("Parse every supported resume in a directory and write one output per file"),
		mcp.WithString("directory",
			mcp.Description("Directory path to process (uses default if empty)"),
		),
		mcp.WithString("outdir",
			mcp.Description("Output directory for parsed records (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(batchDirectoryTool, s.handleBatchDirectory)
}

// Handler functions

func (s *Server) handleParseFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resume, err := s.parser.Parse(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Successfully parsed resume: %s\n\n%s", path, data)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.parser.Extractor().ValidateFile(extract.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("File %s is a valid resume input", result.Path)
	} else {
		responseText = fmt.Sprintf("Validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleScanDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := s.config.ResumeDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(directory, entry.Name())
		if s.parser.Extractor().IsSupported(path) {
			files = append(files, entry.Name())
		}
	}

	if len(files) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No resume files found in directory: %s", directory)), nil
	}

	responseText := fmt.Sprintf("Found %d resume file(s) in %s:\n%s",
		len(files), directory, strings.Join(files, "\n"))
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleBatchDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := s.config.ResumeDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	outDir := s.config.OutputDirectory // default
	if dir, ok := args["outdir"].(string); ok && dir != "" {
		outDir = dir
	}

	summary, err := s.batcher.ProcessDirectory(ctx, directory, outDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatBatchSummary(summary)), nil
}

// formatBatchSummary renders a batch summary as readable text
func (s *Server) formatBatchSummary(summary *batch.Summary) string {
	text := fmt.Sprintf("Batch %s over %s\n", summary.JobID, summary.Directory)
	text += fmt.Sprintf("Processed: %d, Succeeded: %d, Failed: %d\n",
		summary.Processed, summary.Succeeded, summary.Failed)

	for _, result := range summary.Results {
		if result.Err != "" {
			text += fmt.Sprintf("  FAILED %s: %s\n", result.Path, result.Err)
		} else {
			text += fmt.Sprintf("  OK     %s -> %s\n", result.Path, result.OutputPath)
		}
	}

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting resume parser MCP server in stdio mode")
		log.Printf("Resume directory: %s", s.config.ResumeDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs transport for HTTP serving is not wired up yet
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
