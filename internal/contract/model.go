package contract

import (
	"time"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/shopspring/decimal"
)

// ModelSnapshot is the save request and load response for a persisted grid.
type ModelSnapshot struct {
	Rows                  []RowPayload    `json:"rows"`
	StartDate             time.Time       `json:"startDate"`
	BucketWidth           string          `json:"bucketWidth"`
	MinCashThreshold      decimal.Decimal `json:"minCashThreshold"`
	TotalBuckets          int             `json:"totalBuckets"`
	ActualBucketCount     int             `json:"actualBucketCount"`
	ForecastBucketCount   int             `json:"forecastBucketCount"`
	DefaultForecastMethod string          `json:"defaultForecastMethod,omitempty"`
	SavedAt               time.Time       `json:"savedAt,omitempty"`
}

// FromModel converts a model to its persisted form.
func FromModel(m *domain.Model) *ModelSnapshot {
	return &ModelSnapshot{
		Rows:                  FromRows(m.Rows),
		StartDate:             m.StartDate,
		BucketWidth:           string(m.BucketWidth),
		MinCashThreshold:      m.MinCashThreshold,
		TotalBuckets:          m.BucketCount(),
		ActualBucketCount:     m.ActualBuckets,
		ForecastBucketCount:   m.ForecastBuckets,
		DefaultForecastMethod: string(m.DefaultMethod),
	}
}

// ToModel converts a persisted snapshot back to a model. Older snapshots
// without an actual-bucket count treat every bucket as actual.
func (s *ModelSnapshot) ToModel() *domain.Model {
	actual := s.ActualBucketCount
	if actual == 0 {
		actual = s.TotalBuckets - s.ForecastBucketCount
	}
	return &domain.Model{
		Rows:             ToRows(s.Rows),
		ActualBuckets:    actual,
		ForecastBuckets:  s.ForecastBucketCount,
		StartDate:        s.StartDate,
		BucketWidth:      domain.BucketWidth(s.BucketWidth),
		MinCashThreshold: s.MinCashThreshold,
		DefaultMethod:    domain.ForecastMethod(s.DefaultForecastMethod),
	}
}

// VersionInfo describes one implicit version snapshot.
type VersionInfo struct {
	VersionID string    `json:"versionId"`
	CreatedAt time.Time `json:"createdAt"`
	Label     string    `json:"label"`
	RowCount  int       `json:"rowCount"`
}
