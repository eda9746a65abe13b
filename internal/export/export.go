// Package export serializes parsed resume records to JSON, CSV or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/DarshanCode2005/resume-parser/internal/parser"
)

// ErrUnsupportedOutputFormat is returned for any format other than
// json, csv or xlsx (case-insensitive).
var ErrUnsupportedOutputFormat = errors.New("unsupported output format")

// columns is the fixed flattened column order for tabular formats
var columns = []string{"contact_information", "sections", "skills"}

// Service writes parsed resume records to disk in the requested format
type Service struct{}

// NewService creates a new export service
func NewService() *Service {
	return &Service{}
}

// Write serializes the record to the given path in the given format.
// JSON is lossless; CSV and XLSX flatten the record into a single tabular
// row with nested maps stringified, and do not round-trip.
func (s *Service) Write(resume *parser.Resume, path, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return s.WriteJSON(resume, path)
	case "csv":
		return s.WriteCSV(resume, path)
	case "xlsx":
		return s.WriteXLSX(resume, path)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOutputFormat, format)
	}
}

// WriteJSON writes the record as pretty-printed UTF-8 JSON
func (s *Service) WriteJSON(resume *parser.Resume, path string) error {
	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal resume: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteCSV writes the record as one header row and one data row. Nested maps
// become JSON-stringified cell values; the skills set becomes a JSON array
// string. The flattening is lossy by design.
func (s *Service) WriteCSV(resume *parser.Resume, path string) error {
	row, err := flattenRecord(resume)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the record as a one-row worksheet
func (s *Service) WriteXLSX(resume *parser.Resume, path string) error {
	row, err := flattenRecord(resume)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	const sheet = "Resume"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("write header cell: %w", err)
		}
		cell, _ = excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, cell, row[i]); err != nil {
			return fmt.Errorf("write data cell: %w", err)
		}
	}

	// Widen the content columns
	_ = f.SetColWidth(sheet, "A", "B", 48)
	_ = f.SetColWidth(sheet, "C", "C", 32)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// flattenRecord flattens the record into a single tabular row following the
// fixed column order. Map keys inside a cell are sorted by the JSON encoder,
// so the stringification is deterministic.
func flattenRecord(resume *parser.Resume) ([]string, error) {
	contact, err := json.Marshal(resume.ContactInformation)
	if err != nil {
		return nil, fmt.Errorf("flatten contact info: %w", err)
	}
	sections, err := json.Marshal(resume.Sections)
	if err != nil {
		return nil, fmt.Errorf("flatten sections: %w", err)
	}
	skills, err := json.Marshal(resume.Skills)
	if err != nil {
		return nil, fmt.Errorf("flatten skills: %w", err)
	}

	return []string{string(contact), string(sections), string(skills)}, nil
}
