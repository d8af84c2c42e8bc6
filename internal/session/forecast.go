package session

import (
	"fmt"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/grid"
)

// ApplyForecast merges a collaborator response: the returned rows replace
// the tree wholesale and the forecast bucket count comes live. The merge is
// all-or-nothing — any shape mismatch rejects the whole response and leaves
// the model untouched.
func (s *Session) ApplyForecast(resp *contract.ForecastResponse) error {
	err := s.do(func() error {
		m := s.model
		if resp == nil || len(resp.Rows) == 0 {
			return fmt.Errorf("%w: empty response", ErrForecastMismatch)
		}
		if resp.ActualBucketCount != m.ActualBuckets {
			return fmt.Errorf("%w: actual buckets %d, model has %d",
				ErrForecastMismatch, resp.ActualBucketCount, m.ActualBuckets)
		}
		if resp.ForecastBucketCount <= 0 {
			return fmt.Errorf("%w: forecast bucket count %d",
				ErrForecastMismatch, resp.ForecastBucketCount)
		}
		total := resp.ActualBucketCount + resp.ForecastBucketCount
		for _, p := range resp.Rows {
			if len(p.Values) != total {
				return fmt.Errorf("%w: row %q has %d values for %d buckets",
					ErrForecastMismatch, p.Label, len(p.Values), total)
			}
		}

		s.pushUndo()
		m.Rows = contract.ToRows(resp.Rows)
		m.ForecastBuckets = resp.ForecastBucketCount
		grid.Recalculate(m)
		s.dirty = true
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(EventForecast)
	return nil
}

// ClearForecast truncates every row back to the actual bucket count, drops
// per-row forecast annotations and resets the forecast count. No-op when no
// forecast is merged.
func (s *Session) ClearForecast() {
	cleared := false
	s.do(func() error {
		m := s.model
		if !m.HasForecast() {
			return nil
		}

		s.pushUndo()
		for _, r := range m.Rows {
			r.ResizeValues(m.ActualBuckets)
			r.Forecast = nil
		}
		m.ForecastBuckets = 0
		grid.Recalculate(m)
		s.dirty = true
		cleared = true
		return nil
	})
	if cleared {
		s.notify(EventForecast)
	}
}

// ActualOnlyRows returns the arena truncated to actual buckets, the shape
// the forecasting collaborator is invoked with.
func (s *Session) ActualOnlyRows() []contract.RowPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.model
	rows := contract.FromRows(m.Rows)
	for i := range rows {
		if len(rows[i].Values) > m.ActualBuckets {
			rows[i].Values = rows[i].Values[:m.ActualBuckets]
		}
	}
	return rows
}
