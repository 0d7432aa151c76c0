// Package tabular reads delimited text and Excel workbooks into a uniform
// header+rows shape for dataset registration.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a fully-materialized tabular file
type Table struct {
	Headers []string
	Rows    [][]string
}

// Reader loads CSV, TSV, and XLSX files
type Reader struct {
	filePath string
	fileType string // "csv", "tsv" or "xlsx"
}

// NewReader creates a reader for the given file, inferring the type from the
// extension. Unknown extensions are treated as comma-delimited text.
func NewReader(filePath string) *Reader {
	fileType := "csv"
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xls":
		fileType = "xlsx"
	case ".tsv":
		fileType = "tsv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Delimiter returns the field delimiter for delimited text files
func (r *Reader) Delimiter() byte {
	if r.fileType == "tsv" {
		return '\t'
	}
	return ','
}

// IsExcel reports whether the underlying file is a workbook
func (r *Reader) IsExcel() bool {
	return r.fileType == "xlsx"
}

// Read loads the whole file. The first row becomes Headers; callers decide
// whether it really is a header row.
func (r *Reader) Read() (*Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", r.filePath)
	}

	if r.fileType == "xlsx" {
		return r.readExcel()
	}
	return r.readDelimited()
}

func (r *Reader) readDelimited() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = rune(r.Delimiter())
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.filePath, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty: %s", r.filePath)
	}

	return &Table{Headers: records[0], Rows: records[1:]}, nil
}

func (r *Reader) readExcel() (*Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", r.filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", r.filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	// Pad ragged rows to the header width so downstream indexing is uniform.
	width := len(rows[0])
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}

	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}

// WriteCSV writes a table as comma-delimited text, header row first. Used to
// normalize workbooks so the analysis engine only ever reads delimited text.
func WriteCSV(path string, table *Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	writer.Flush()
	return writer.Error()
}
