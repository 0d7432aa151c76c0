package memory

import (
	"context"
	"sync"

	"oxbio/domain/core"
	"oxbio/domain/dataset"
	"oxbio/internal/errors"
	"oxbio/ports"
)

// datasetRepository is the in-memory dataset registry, used when no
// DATABASE_URL is configured. Safe for concurrent use.
type datasetRepository struct {
	mu      sync.RWMutex
	records map[core.DatasetID]*dataset.Record
}

// NewDatasetRepository creates an empty in-memory dataset registry
func NewDatasetRepository() ports.DatasetRepository {
	return &datasetRepository{records: make(map[core.DatasetID]*dataset.Record)}
}

func (r *datasetRepository) Save(_ context.Context, record *dataset.Record) error {
	if record == nil || record.ID.String() == "" {
		return errors.InvalidInput("dataset record requires an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *record
	stored.Columns = append([]string(nil), record.Columns...)
	r.records[record.ID] = &stored
	return nil
}

func (r *datasetRepository) Get(_ context.Context, id core.DatasetID) (*dataset.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.records[id]
	if !ok {
		return nil, errors.DatasetNotFound(id.String())
	}
	record := *stored
	record.Columns = append([]string(nil), stored.Columns...)
	return &record, nil
}

func (r *datasetRepository) List(_ context.Context) ([]*dataset.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*dataset.Record, 0, len(r.records))
	for _, stored := range r.records {
		record := *stored
		record.Columns = append([]string(nil), stored.Columns...)
		records = append(records, &record)
	}
	return records, nil
}
