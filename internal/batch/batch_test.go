package batch

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DarshanCode2005/resume-parser/internal/export"
	"github.com/DarshanCode2005/resume-parser/internal/extract"
	"github.com/DarshanCode2005/resume-parser/internal/parser"
)

func newTestProcessor(logger *log.Logger) *Processor {
	p := parser.NewParser(extract.NewService(10*1024*1024), nil)
	return NewProcessor(p, export.NewService(), "json", logger)
}

func writeBatchFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "parsed")

	writeBatchFile(t, dir, "good.txt", "Skills\nPython and Docker\n")
	writeBatchFile(t, dir, "broken.pdf", "not a real pdf")
	writeBatchFile(t, dir, "notes.md", "should be skipped")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o750); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	writeBatchFile(t, filepath.Join(dir, "subdir"), "nested.txt", "not recursed into")

	var buf strings.Builder
	processor := newTestProcessor(log.New(&buf, "", 0))

	summary, err := processor.ProcessDirectory(context.Background(), dir, outDir)
	if err != nil {
		t.Fatalf("ProcessDirectory() unexpected error: %v", err)
	}

	if summary.Processed != 2 {
		t.Errorf("Processed = %d, want 2 (md file and subdirectory skipped)", summary.Processed)
	}
	if summary.Succeeded != 1 {
		t.Errorf("Succeeded = %d, want 1", summary.Succeeded)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1 (corrupt pdf must not abort the run)", summary.Failed)
	}
	if summary.JobID == "" {
		t.Error("expected a non-empty job id")
	}
	if summary.Directory != dir {
		t.Errorf("Directory = %q, want %q", summary.Directory, dir)
	}

	// The good file produced an output record next to the failed one's absence
	outPath := filepath.Join(outDir, "good_parsed.json")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected output file for good.txt: %v", err)
	}
	var resume parser.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(resume.Skills) == 0 {
		t.Error("expected skills in the parsed output")
	}

	if _, err := os.Stat(filepath.Join(outDir, "broken_parsed.json")); !os.IsNotExist(err) {
		t.Error("failed file should not produce an output record")
	}

	logText := buf.String()
	if strings.Count(logText, "Error processing broken.pdf") != 1 {
		t.Errorf("expected exactly one error line for broken.pdf, got log:\n%s", logText)
	}
	if !strings.Contains(logText, "Successfully parsed: good.txt") {
		t.Errorf("expected a success line for good.txt, got log:\n%s", logText)
	}
}

func TestProcessDirectoryResults(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	writeBatchFile(t, dir, "a.txt", "Education\nMIT\n")
	writeBatchFile(t, dir, "b.pdf", "bogus")

	var buf strings.Builder
	processor := newTestProcessor(log.New(&buf, "", 0))

	summary, err := processor.ProcessDirectory(context.Background(), dir, outDir)
	if err != nil {
		t.Fatalf("ProcessDirectory() unexpected error: %v", err)
	}

	if len(summary.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(summary.Results))
	}
	for _, result := range summary.Results {
		switch filepath.Base(result.Path) {
		case "a.txt":
			if result.Err != "" {
				t.Errorf("a.txt should have succeeded: %s", result.Err)
			}
			if result.OutputPath != filepath.Join(outDir, "a_parsed.json") {
				t.Errorf("unexpected output path %q", result.OutputPath)
			}
		case "b.pdf":
			if result.Err == "" {
				t.Error("b.pdf should carry an error message")
			}
			if result.OutputPath != "" {
				t.Errorf("failed file should have no output path, got %q", result.OutputPath)
			}
		default:
			t.Errorf("unexpected result path %q", result.Path)
		}
	}
}

func TestProcessDirectoryMissingDirectory(t *testing.T) {
	processor := newTestProcessor(log.New(&strings.Builder{}, "", 0))

	_, err := processor.ProcessDirectory(context.Background(),
		filepath.Join(t.TempDir(), "absent"), t.TempDir())
	if err == nil {
		t.Fatal("ProcessDirectory() expected error for missing directory")
	}
}

func TestProcessDirectoryEmptyDirectory(t *testing.T) {
	processor := newTestProcessor(log.New(&strings.Builder{}, "", 0))

	summary, err := processor.ProcessDirectory(context.Background(), t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("ProcessDirectory() unexpected error: %v", err)
	}
	if summary.Processed != 0 || len(summary.Results) != 0 {
		t.Errorf("empty directory should yield an empty summary, got %+v", summary)
	}
}

func TestProcessDirectoryCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeBatchFile(t, dir, "a.txt", "Education\nMIT\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := newTestProcessor(log.New(&strings.Builder{}, "", 0))
	summary, err := processor.ProcessDirectory(ctx, dir, t.TempDir())
	if err == nil {
		t.Fatal("ProcessDirectory() expected context error")
	}
	if summary == nil {
		t.Fatal("cancelled run should still return the partial summary")
	}
	if summary.Processed != 0 {
		t.Errorf("no files should be processed after cancellation, got %d", summary.Processed)
	}
}

func TestOutputPath(t *testing.T) {
	p := parser.NewParser(extract.NewService(1024), nil)

	tests := []struct {
		format string
		name   string
		want   string
	}{
		{format: "json", name: "resume.pdf", want: "resume_parsed.json"},
		{format: "csv", name: "resume.docx", want: "resume_parsed.csv"},
		{format: "xlsx", name: "jane.doe.txt", want: "jane.doe_parsed.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			processor := NewProcessor(p, export.NewService(), tt.format, log.New(&strings.Builder{}, "", 0))
			got := processor.outputPath("/out", tt.name)
			if got != filepath.Join("/out", tt.want) {
				t.Errorf("outputPath() = %q, want %q", got, filepath.Join("/out", tt.want))
			}
		})
	}
}
