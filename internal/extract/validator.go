package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Validator handles input file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new input file validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs validation on a resume input file
func (v *Validator) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	result := &ValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	err := v.validateInputFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	result.Valid = true
	return result, nil
}

// validateInputFile performs detailed validation on an input file
func (v *Validator) validateInputFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Check if file exists and get basic info
	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	// Check if it's a regular file (not a directory)
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(filePath))
	supported := false
	for _, s := range SupportedExtensions {
		if ext == s {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: %s", ErrUnsupportedInputFormat, ext)
	}

	// Check file size
	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	// Deep validation for PDFs: run the file through the pdfcpu validator to
	// catch corrupt or truncated documents before extraction is attempted
	if ext == ".pdf" {
		if err := api.ValidateFile(filePath, nil); err != nil {
			return fmt.Errorf("invalid PDF file: %w", err)
		}
	}

	return nil
}

// IsValidInput performs a quick check to see if a file is a readable resume input
func (v *Validator) IsValidInput(filePath string) bool {
	return v.validateInputFile(filePath) == nil
}
