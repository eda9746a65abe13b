package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// WordReader extracts plain text from DOCX and legacy DOC resumes using the
// docconv document-model converter. Paragraph text is concatenated with
// newline separators; tables, headers and footers are not extracted.
type WordReader struct {
	maxFileSize int64
}

// NewWordReader creates a new Word document reader
func NewWordReader(maxFileSize int64) *WordReader {
	return &WordReader{
		maxFileSize: maxFileSize,
	}
}

// ReadFile extracts text content from a .docx or .doc file
func (r *WordReader) ReadFile(path string, fileInfo os.FileInfo) (*TextExtractResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))

	var text string
	switch ext {
	case ".docx":
		text, _, err = docconv.ConvertDocx(f)
	case ".doc":
		text, _, err = docconv.ConvertDoc(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInputFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to convert document: %w", err)
	}

	return &TextExtractResult{
		Path:   path,
		Format: strings.TrimPrefix(ext, "."),
		Size:   fileInfo.Size(),
		Text:   text,
	}, nil
}
