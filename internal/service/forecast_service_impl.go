package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/forecast"
	"github.com/alexanderramin/cashgrid/internal/session"
)

type forecastService struct {
	client   forecast.Client
	cfg      forecast.Config
	observer UseCaseObserver
}

// NewForecastService creates a ForecastService backed by the collaborator
// client. The config supplies the default horizon and method.
func NewForecastService(client forecast.Client, cfg forecast.Config, observers ...UseCaseObserver) ForecastService {
	return &forecastService{
		client:   client,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *forecastService) Generate(ctx context.Context, sess *session.Session, horizon int) (err error) {
	startedAt := time.Now().UTC()
	if horizon <= 0 {
		horizon = s.cfg.Horizon
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-forecast",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"horizon": horizon},
		})
	}()

	m := sess.Model()
	method := m.DefaultMethod
	if method == "" {
		method = s.cfg.DefaultMethod
	}

	req := contract.ForecastRequest{
		Rows:                sess.ActualOnlyRows(),
		ActualBucketCount:   m.ActualBuckets,
		ForecastBucketCount: horizon,
		Method:              string(method),
		PerRowOverrides:     overridesFor(m),
	}

	resp, err := s.client.Generate(ctx, req)
	if err != nil {
		return err
	}
	return sess.ApplyForecast(resp)
}

func (s *forecastService) Clear(ctx context.Context, sess *session.Session, modelID string) error {
	sess.ClearForecast()
	// The collaborator's persisted state is advisory; a clear that cannot
	// reach it still succeeds locally.
	if modelID != "" {
		if err := s.client.Clear(ctx, modelID); err != nil {
			s.observer.ObserveUseCase(ctx, UseCaseEvent{
				Name:      "clear-forecast-remote",
				StartedAt: time.Now().UTC(),
				Success:   false,
				Err:       err,
				Fields:    map[string]any{"model_id": modelID},
			})
		}
	}
	return nil
}

func (s *forecastService) Available(ctx context.Context) bool {
	return s.client.Available(ctx)
}

// overridesFor collects per-row method overrides keyed by row ID, or by
// canonical label for structural rows.
func overridesFor(m *domain.Model) map[string]contract.ForecastOverride {
	var out map[string]contract.ForecastOverride
	for _, r := range m.Rows {
		if r.ForecastOverride == nil {
			continue
		}
		if out == nil {
			out = make(map[string]contract.ForecastOverride)
		}
		key := r.ID
		if key == "" {
			key = r.Label
		}
		out[key] = contract.ForecastOverride{
			Method: string(r.ForecastOverride.Method),
			Params: r.ForecastOverride.Params,
		}
	}
	return out
}
