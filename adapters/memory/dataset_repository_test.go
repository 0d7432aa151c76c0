package memory

import (
	"context"
	"testing"
	"time"

	"oxbio/domain/core"
	"oxbio/domain/dataset"
	"oxbio/internal/errors"
)

func sampleRecord(id string) *dataset.Record {
	return &dataset.Record{
		ID:        core.DatasetID(id),
		Filename:  "study.csv",
		LocalPath: "/tmp/study.csv",
		Delimiter: ',',
		HasHeader: true,
		Columns:   []string{"age", "marker"},
		RowCount:  10,
		CreatedAt: time.Now(),
	}
}

func TestSaveAndGet(t *testing.T) {
	repo := NewDatasetRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, sampleRecord("ds-1")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	record, err := repo.Get(ctx, "ds-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record.Filename != "study.csv" || record.RowCount != 10 {
		t.Errorf("record = %+v", record)
	}
}

func TestGetUnknownID(t *testing.T) {
	repo := NewDatasetRepository()

	_, err := repo.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected an error for an unknown id")
	}
	if code := errors.GetCode(err); code != errors.CodeDatasetNotFound {
		t.Errorf("error code = %q, want %q", code, errors.CodeDatasetNotFound)
	}
}

func TestSaveRequiresID(t *testing.T) {
	repo := NewDatasetRepository()

	if err := repo.Save(context.Background(), &dataset.Record{}); err == nil {
		t.Error("expected an error for a record without an id")
	}
}

func TestGetReturnsCopies(t *testing.T) {
	repo := NewDatasetRepository()
	ctx := context.Background()
	if err := repo.Save(ctx, sampleRecord("ds-1")); err != nil {
		t.Fatal(err)
	}

	first, _ := repo.Get(ctx, "ds-1")
	first.Filename = "mutated.csv"
	first.Columns[0] = "mutated"

	second, _ := repo.Get(ctx, "ds-1")
	if second.Filename != "study.csv" {
		t.Error("caller mutation leaked into the stored record")
	}
	if second.Columns[0] != "age" {
		t.Error("caller mutation of columns leaked into the stored record")
	}
}

func TestList(t *testing.T) {
	repo := NewDatasetRepository()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Save(ctx, sampleRecord(id)); err != nil {
			t.Fatal(err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}
