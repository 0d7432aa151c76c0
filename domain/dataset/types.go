package dataset

import (
	"time"

	"oxbio/domain/core"
)

// Record is the immutable handle for a registered tabular dataset.
// The analysis engine only reads it; ownership stays with the registry.
type Record struct {
	ID          core.DatasetID `json:"id" db:"id"`
	Filename    string         `json:"filename" db:"filename"`
	LocalPath   string         `json:"local_path" db:"local_path"`
	ContentType string         `json:"content_type" db:"content_type"`
	Delimiter   byte           `json:"-" db:"delimiter"`
	HasHeader   bool           `json:"has_header" db:"has_header"`
	Columns     []string       `json:"columns" db:"-"`
	RowCount    int            `json:"row_count" db:"row_count"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// DelimiterName returns a human-readable delimiter label for logs and responses.
func (r *Record) DelimiterName() string {
	if r.Delimiter == '\t' {
		return "tab"
	}
	return "comma"
}
