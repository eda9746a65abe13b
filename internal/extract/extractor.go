package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the resume file extensions the extractor accepts,
// in dispatch order.
var SupportedExtensions = []string{".pdf", ".docx", ".doc", ".txt"}

// Service converts resume files into plain text by dispatching on the file
// extension to a format-specific collaborator.
type Service struct {
	maxFileSize int64
	pdf         *PDFReader
	word        *WordReader
	validator   *Validator
}

// NewService creates a new text extraction service with all format readers
func NewService(maxFileSize int64) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		pdf:         NewPDFReader(maxFileSize),
		word:        NewWordReader(maxFileSize),
		validator:   NewValidator(maxFileSize),
	}
}

// ExtractFile extracts the plain text content of a resume file.
// Unsupported extensions fail with ErrUnsupportedInputFormat; I/O and parse
// failures from the format collaborators are wrapped and returned as-is.
func (s *Service) ExtractFile(req TextExtractRequest) (*TextExtractResult, error) {
	fileInfo, err := s.statInputFile(req.Path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(req.Path))
	switch ext {
	case ".pdf":
		return s.pdf.ReadFile(req.Path, fileInfo)
	case ".docx", ".doc":
		return s.word.ReadFile(req.Path, fileInfo)
	case ".txt":
		return s.readTextFile(req.Path, fileInfo)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInputFormat, ext)
	}
}

// IsSupported reports whether the path carries a supported resume extension
func (s *Service) IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ValidateFile performs validation on an input file without extracting it
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	return s.validator.ValidateFile(req)
}

// statInputFile performs the shared pre-extraction checks on an input path
func (s *Service) statInputFile(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if fileInfo.Size() > s.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), s.maxFileSize)
	}

	return fileInfo, nil
}

// readTextFile reads a plain text resume verbatim
func (s *Service) readTextFile(path string, fileInfo os.FileInfo) (*TextExtractResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	return &TextExtractResult{
		Path:   path,
		Format: "txt",
		Size:   fileInfo.Size(),
		Text:   string(content),
	}, nil
}
