package extract

import "errors"

// ErrUnsupportedInputFormat is returned when a file extension is not one of
// the supported resume formats (.pdf, .docx, .doc, .txt).
var ErrUnsupportedInputFormat = errors.New("unsupported input format")

// TextExtractRequest represents a request to extract text from a resume file
type TextExtractRequest struct {
	Path string `json:"path"`
}

// TextExtractResult represents the extracted text content of a resume file
type TextExtractResult struct {
	Path   string `json:"path"`
	Format string `json:"format"` // file extension without the dot
	Size   int64  `json:"size"`
	Pages  int    `json:"pages,omitempty"` // PDF only
	Text   string `json:"text"`
}

// ValidateFileRequest represents a request to validate an input file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult represents the result of input file validation
type ValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
