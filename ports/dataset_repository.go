package ports

import (
	"context"

	"oxbio/domain/core"
	"oxbio/domain/dataset"
)

// DatasetRepository is the registry of uploaded datasets. Records are
// immutable once saved; the analysis engine only ever reads them.
type DatasetRepository interface {
	Save(ctx context.Context, record *dataset.Record) error
	Get(ctx context.Context, id core.DatasetID) (*dataset.Record, error)
	List(ctx context.Context) ([]*dataset.Record, error)
}
