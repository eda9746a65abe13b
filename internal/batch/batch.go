// Package batch runs the parsing pipeline over every supported resume file
// in a directory, one file at a time.
package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/DarshanCode2005/resume-parser/internal/export"
	"github.com/DarshanCode2005/resume-parser/internal/parser"
)

// FileResult records the outcome of one file in a batch run. Err is the
// error message for failed files and empty for successes.
type FileResult struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path,omitempty"`
	Err        string `json:"error,omitempty"`
}

// Summary aggregates a batch run. Partial failure is expected and non-fatal:
// failed files are collected alongside successes rather than aborting the run.
type Summary struct {
	JobID     string       `json:"job_id"`
	Directory string       `json:"directory"`
	Processed int          `json:"processed"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []FileResult `json:"results"`
}

// Processor ties the parser and exporter together for directory runs
type Processor struct {
	parser   *parser.Parser
	exporter *export.Service
	format   string
	logger   *log.Logger
}

// NewProcessor creates a batch processor writing results in the given format
func NewProcessor(p *parser.Parser, exporter *export.Service, format string, logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	return &Processor{
		parser:   p,
		exporter: exporter,
		format:   format,
		logger:   logger,
	}
}

// ProcessDirectory parses every supported resume file directly inside dir and
// writes one output per file into outDir (created if absent). Files are
// processed sequentially; a failing file is logged and skipped.
func (p *Processor) ProcessDirectory(ctx context.Context, dir, outDir string) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	summary := &Summary{
		JobID:     uuid.NewString(),
		Directory: dir,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !p.parser.Extractor().IsSupported(path) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Processed++
		outPath := p.outputPath(outDir, entry.Name())

		if err := p.processFile(ctx, path, outPath); err != nil {
			p.logger.Printf("Error processing %s: %v", entry.Name(), err)
			summary.Failed++
			summary.Results = append(summary.Results, FileResult{Path: path, Err: err.Error()})
			continue
		}

		p.logger.Printf("Successfully parsed: %s", entry.Name())
		summary.Succeeded++
		summary.Results = append(summary.Results, FileResult{Path: path, OutputPath: outPath})
	}

	return summary, nil
}

// processFile parses one resume and writes its record
func (p *Processor) processFile(ctx context.Context, path, outPath string) error {
	resume, err := p.parser.Parse(ctx, path)
	if err != nil {
		return err
	}
	return p.exporter.Write(resume, outPath, p.format)
}

// outputPath derives "<stem>_parsed.<format>" inside the output directory
func (p *Processor) outputPath(outDir, name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(outDir, fmt.Sprintf("%s_parsed.%s", stem, p.format))
}
