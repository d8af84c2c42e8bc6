package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/repository"
	"github.com/alexanderramin/cashgrid/internal/session"
)

type ModelService interface {
	// Create persists a freshly built model and its initial version snapshot.
	Create(ctx context.Context, name string, m *domain.Model) (*repository.ModelRecord, error)
	// Load fetches a stored model and rebuilds the live tree from it.
	Load(ctx context.Context, id string) (*repository.ModelRecord, *domain.Model, error)
	List(ctx context.Context) ([]*repository.ModelRecord, error)
	// Save replaces the stored snapshot and writes an implicit version.
	Save(ctx context.Context, id string, m *domain.Model) (time.Time, error)
	Delete(ctx context.Context, id string) error
}

type VersionService interface {
	List(ctx context.Context, modelID string) ([]contract.VersionInfo, error)
	// Rollback rebuilds the live tree from a version snapshot. The stored
	// model is untouched until the caller saves.
	Rollback(ctx context.Context, versionID string) (*domain.Model, error)
	Label(ctx context.Context, versionID, label string) error
}

type ForecastService interface {
	// Generate asks the collaborator to extend the session's grid by horizon
	// buckets and merges the response. The merge is all-or-nothing; on any
	// error the session keeps its last good state.
	Generate(ctx context.Context, sess *session.Session, horizon int) error
	// Clear drops the merged forecast locally and best-effort clears the
	// collaborator's persisted state for the model.
	Clear(ctx context.Context, sess *session.Session, modelID string) error
	Available(ctx context.Context) bool
}
