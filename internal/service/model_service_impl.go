package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/db"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/grid"
	"github.com/alexanderramin/cashgrid/internal/repository"
	"github.com/google/uuid"
)

// versionHistoryKeep caps unlabeled versions retained per model; older ones
// are pruned on save. Labeled versions are pinned.
const versionHistoryKeep = 20

type modelService struct {
	models   repository.ModelRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewModelService creates a ModelService. The unit of work scopes each save
// so the snapshot, its version and the prune land atomically.
func NewModelService(models repository.ModelRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ModelService {
	return &modelService{
		models:   models,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *modelService) Create(ctx context.Context, name string, m *domain.Model) (rec *repository.ModelRecord, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-model",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"name": name},
		})
	}()

	now := time.Now().UTC()
	rec = &repository.ModelRecord{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Snapshot:  contract.FromModel(m),
	}
	rec.Snapshot.SavedAt = now

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		models := repository.NewSQLiteModelRepo(tx)
		versions := repository.NewSQLiteVersionRepo(tx)
		if err := models.Create(ctx, rec); err != nil {
			return err
		}
		return versions.Create(ctx, &repository.ModelVersion{
			ID:        uuid.New().String(),
			ModelID:   rec.ID,
			CreatedAt: now,
			Snapshot:  rec.Snapshot,
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *modelService) Load(ctx context.Context, id string) (*repository.ModelRecord, *domain.Model, error) {
	rec, err := s.models.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	m := rec.Snapshot.ToModel()
	grid.Recalculate(m)
	return rec, m, nil
}

func (s *modelService) List(ctx context.Context) ([]*repository.ModelRecord, error) {
	return s.models.List(ctx)
}

func (s *modelService) Save(ctx context.Context, id string, m *domain.Model) (savedAt time.Time, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "save-model",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"model_id": id},
		})
	}()

	savedAt = time.Now().UTC()
	snapshot := contract.FromModel(m)
	snapshot.SavedAt = savedAt

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		models := repository.NewSQLiteModelRepo(tx)
		versions := repository.NewSQLiteVersionRepo(tx)

		rec, err := models.Get(ctx, id)
		if err != nil {
			return err
		}
		rec.Snapshot = snapshot
		if err := models.Update(ctx, rec); err != nil {
			return err
		}
		if err := versions.Create(ctx, &repository.ModelVersion{
			ID:        uuid.New().String(),
			ModelID:   id,
			CreatedAt: savedAt,
			Snapshot:  snapshot,
		}); err != nil {
			return err
		}
		return versions.Prune(ctx, id, versionHistoryKeep)
	})
	if err != nil {
		return time.Time{}, err
	}
	return savedAt, nil
}

func (s *modelService) Delete(ctx context.Context, id string) error {
	return s.models.Delete(ctx, id)
}
