package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
)

// ModelRecord is a stored model. Snapshot is populated by Get; List returns
// metadata only.
type ModelRecord struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Snapshot  *contract.ModelSnapshot
}

// ModelVersion is one immutable snapshot of a model, written on every save.
type ModelVersion struct {
	ID        string
	ModelID   string
	Label     string
	RowCount  int
	CreatedAt time.Time
	Snapshot  *contract.ModelSnapshot
}

type ModelRepo interface {
	Create(ctx context.Context, m *ModelRecord) error
	Get(ctx context.Context, id string) (*ModelRecord, error)
	List(ctx context.Context) ([]*ModelRecord, error)
	// Update replaces the stored snapshot and name wholesale.
	Update(ctx context.Context, m *ModelRecord) error
	Delete(ctx context.Context, id string) error
}

type VersionRepo interface {
	Create(ctx context.Context, v *ModelVersion) error
	Get(ctx context.Context, id string) (*ModelVersion, error)
	ListByModel(ctx context.Context, modelID string) ([]contract.VersionInfo, error)
	SetLabel(ctx context.Context, id, label string) error
	// Prune deletes the oldest unlabeled versions beyond keep.
	Prune(ctx context.Context, modelID string, keep int) error
}
