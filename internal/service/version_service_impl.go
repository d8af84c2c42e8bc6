package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/grid"
	"github.com/alexanderramin/cashgrid/internal/repository"
)

type versionService struct {
	versions repository.VersionRepo
	observer UseCaseObserver
}

// NewVersionService creates a VersionService over the version store.
func NewVersionService(versions repository.VersionRepo, observers ...UseCaseObserver) VersionService {
	return &versionService{
		versions: versions,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *versionService) List(ctx context.Context, modelID string) ([]contract.VersionInfo, error) {
	return s.versions.ListByModel(ctx, modelID)
}

func (s *versionService) Rollback(ctx context.Context, versionID string) (m *domain.Model, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "rollback-version",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"version_id": versionID},
		})
	}()

	v, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}
	m = v.Snapshot.ToModel()
	grid.Recalculate(m)
	return m, nil
}

func (s *versionService) Label(ctx context.Context, versionID, label string) error {
	return s.versions.SetLabel(ctx, versionID, label)
}
