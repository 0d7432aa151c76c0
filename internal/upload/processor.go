// Package upload turns raw file uploads into registered dataset records.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"oxbio/adapters/tabular"
	"oxbio/domain/core"
	"oxbio/domain/dataset"
	"oxbio/internal"
	"oxbio/internal/errors"
	"oxbio/ports"
)

// Processor validates an upload, stores it under the uploads directory,
// inspects its shape and registers the resulting record.
type Processor struct {
	repo           ports.DatasetRepository
	uploadsDir     string
	maxUploadBytes int64
	log            *internal.Logger
}

// NewProcessor creates an upload processor. maxUploadMB bounds the accepted
// file size; anything larger is rejected before it touches disk.
func NewProcessor(repo ports.DatasetRepository, uploadsDir string, maxUploadMB int64) *Processor {
	return &Processor{
		repo:           repo,
		uploadsDir:     uploadsDir,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		log:            internal.NewLogger("UploadProcessor"),
	}
}

// Process ingests one uploaded file. Excel workbooks are normalized to CSV so
// the analysis engine only ever streams delimited text. Returns the saved
// dataset record.
func (p *Processor) Process(ctx context.Context, filename, contentType string, src io.Reader) (*dataset.Record, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".tsv", ".txt", ".xlsx", ".xls":
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type %q", ext))
	}

	if err := os.MkdirAll(p.uploadsDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create uploads directory")
	}

	id := core.DatasetID(core.NewID())
	rawPath := filepath.Join(p.uploadsDir, id.String()+ext)
	if err := p.storeFile(rawPath, src); err != nil {
		return nil, err
	}

	reader := tabular.NewReader(rawPath)
	table, err := reader.Read()
	if err != nil {
		os.Remove(rawPath)
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "failed to parse upload"))
	}

	localPath := rawPath
	delimiter := reader.Delimiter()
	if reader.IsExcel() {
		// The normalized CSV keeps the original row layout verbatim, header
		// row included, so HasHeader means the same thing for both paths.
		localPath = filepath.Join(p.uploadsDir, id.String()+".csv")
		if err := tabular.WriteCSV(localPath, table); err != nil {
			os.Remove(rawPath)
			return nil, errors.Wrap(err, "failed to normalize workbook")
		}
		delimiter = ','
	}

	hasHeader := detectHeader(table.Headers)
	columns := table.Headers
	rowCount := len(table.Rows)
	if !hasHeader {
		columns = syntheticColumns(len(table.Headers))
		rowCount++
	}

	record := &dataset.Record{
		ID:          id,
		Filename:    filename,
		LocalPath:   localPath,
		ContentType: contentType,
		Delimiter:   delimiter,
		HasHeader:   hasHeader,
		Columns:     columns,
		RowCount:    rowCount,
		CreatedAt:   time.Now().UTC(),
	}

	if err := p.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	p.log.Info("registered dataset %s (%s, %d rows, %d columns, %s-delimited)",
		id, filename, record.RowCount, len(record.Columns), record.DelimiterName())
	return record, nil
}

// storeFile copies the upload to disk, enforcing the size cap
func (p *Processor) storeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to store upload")
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, p.maxUploadBytes+1))
	if err != nil {
		os.Remove(path)
		return errors.Wrap(err, "failed to store upload")
	}
	if written > p.maxUploadBytes {
		os.Remove(path)
		return errors.InvalidInput(fmt.Sprintf("upload exceeds %d MB limit", p.maxUploadBytes/(1024*1024)))
	}
	return nil
}

// detectHeader decides whether the first row is a header. A row where every
// non-empty cell parses as a number is data, not labels.
func detectHeader(firstRow []string) bool {
	if len(firstRow) == 0 {
		return true
	}
	sawValue := false
	for _, cell := range firstRow {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return true
		}
		sawValue = true
	}
	return !sawValue
}

// syntheticColumns names headerless columns column_1..column_n, matching the
// names the analysis engine synthesizes for unnamed positions.
func syntheticColumns(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("column_%d", i+1)
	}
	return names
}
