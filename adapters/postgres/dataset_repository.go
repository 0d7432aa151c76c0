package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"oxbio/domain/core"
	"oxbio/domain/dataset"
	"oxbio/internal/errors"
	"oxbio/ports"
)

// Schema for the dataset registry:
//
//	CREATE TABLE IF NOT EXISTS datasets (
//	    id           TEXT PRIMARY KEY,
//	    filename     TEXT NOT NULL,
//	    local_path   TEXT NOT NULL,
//	    content_type TEXT NOT NULL,
//	    delimiter    SMALLINT NOT NULL,
//	    has_header   BOOLEAN NOT NULL,
//	    columns      TEXT[] NOT NULL,
//	    row_count    INTEGER NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL
//	);

// datasetRepository implements the DatasetRepository interface over Postgres
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new Postgres-backed dataset registry
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

func (r *datasetRepository) Save(ctx context.Context, record *dataset.Record) error {
	query := `INSERT INTO datasets (
		id, filename, local_path, content_type, delimiter, has_header, columns, row_count, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		filename = EXCLUDED.filename,
		local_path = EXCLUDED.local_path,
		content_type = EXCLUDED.content_type,
		delimiter = EXCLUDED.delimiter,
		has_header = EXCLUDED.has_header,
		columns = EXCLUDED.columns,
		row_count = EXCLUDED.row_count`

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(), record.Filename, record.LocalPath, record.ContentType,
		int16(record.Delimiter), record.HasHeader, pq.Array(record.Columns),
		record.RowCount, record.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(errors.DatabaseError(err.Error()), "failed to save dataset record")
	}
	return nil
}

func (r *datasetRepository) Get(ctx context.Context, id core.DatasetID) (*dataset.Record, error) {
	query := `SELECT id, filename, local_path, content_type, delimiter, has_header, columns, row_count, created_at
		FROM datasets WHERE id = $1`

	record, err := r.scanRecord(r.db.QueryRowxContext(ctx, query, id.String()))
	if err == sql.ErrNoRows {
		return nil, errors.DatasetNotFound(id.String())
	}
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError(err.Error()), "failed to load dataset record")
	}
	return record, nil
}

func (r *datasetRepository) List(ctx context.Context) ([]*dataset.Record, error) {
	query := `SELECT id, filename, local_path, content_type, delimiter, has_header, columns, row_count, created_at
		FROM datasets ORDER BY created_at`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError(err.Error()), "failed to list dataset records")
	}
	defer rows.Close()

	records := make([]*dataset.Record, 0)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(errors.DatabaseError(err.Error()), "failed to scan dataset record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.DatabaseError(err.Error()), "failed to iterate dataset records")
	}
	return records, nil
}

// rowScanner covers both *sqlx.Row and *sqlx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *datasetRepository) scanRecord(row rowScanner) (*dataset.Record, error) {
	var record dataset.Record
	var id string
	var delimiter int16
	var columns pq.StringArray

	err := row.Scan(&id, &record.Filename, &record.LocalPath, &record.ContentType,
		&delimiter, &record.HasHeader, &columns, &record.RowCount, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.ID = core.DatasetID(id)
	record.Delimiter = byte(delimiter)
	record.Columns = []string(columns)
	return &record, nil
}
