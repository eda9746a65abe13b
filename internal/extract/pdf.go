package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFReader extracts plain text from PDF resumes
type PDFReader struct {
	maxFileSize int64
	maxTextSize int
}

// NewPDFReader creates a new PDF reader with the specified constraints
func NewPDFReader(maxFileSize int64) *PDFReader {
	return &PDFReader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadFile extracts text content from a PDF file. Layout, tables and columns
// are flattened to whatever the underlying extractor produces.
func (r *PDFReader) ReadFile(path string, fileInfo os.FileInfo) (*TextExtractResult, error) {
	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	content, err := r.extractTextContent(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	return &TextExtractResult{
		Path:   path,
		Format: "pdf",
		Size:   fileInfo.Size(),
		Pages:  pdfReader.NumPage(),
		Text:   content,
	}, nil
}

// extractTextContent extracts text content from a PDF reader page by page
func (r *PDFReader) extractTextContent(pdfReader *pdf.Reader) (string, error) {
	if pdfReader == nil {
		return "", fmt.Errorf("pdf reader is nil")
	}

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		// Check if adding this content would exceed the limit
		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n")
		}
	}

	text := builder.String()
	if text == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}

	return text, nil
}
