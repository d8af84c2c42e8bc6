package testutil

import (
	"time"

	"github.com/alexanderramin/cashgrid/internal/classify"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/grid"
	"github.com/shopspring/decimal"
)

// Dec parses a decimal literal, panicking on malformed input. Test-only.
func Dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Decs parses a slice of decimal literals.
func Decs(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = Dec(s)
	}
	return out
}

// EvenSplit spreads a total evenly across n buckets, drift in the last.
func EvenSplit(total string, n int) []decimal.Decimal {
	t := Dec(total)
	per := t.Div(decimal.NewFromInt(int64(n))).Round(2)
	out := make([]decimal.Decimal, n)
	sum := decimal.Zero
	for i := 0; i < n-1; i++ {
		out[i] = per
		sum = sum.Add(per)
	}
	out[n-1] = t.Sub(sum)
	return out
}

// SummaryOption mutates the default test summary.
type SummaryOption func(*classify.Summary)

// WithCategory adds a flat category with the given per-bucket credits or
// debits (either slice may be nil).
func WithCategory(name string, credits, debits []decimal.Decimal) SummaryOption {
	return func(s *classify.Summary) {
		f := classify.CategoryFigures{Count: 1}
		for _, v := range credits {
			f.Credits = f.Credits.Add(v)
		}
		for _, v := range debits {
			f.Debits = f.Debits.Add(v)
		}
		f.PerBucketCredits = credits
		f.PerBucketDebits = debits
		s.CategorySummary[name] = f
	}
}

// WithCluster adds a cluster under an existing category.
func WithCluster(id, category, representative string, debits []decimal.Decimal) SummaryOption {
	return func(s *classify.Summary) {
		if s.Clusters == nil {
			s.Clusters = make(map[string]classify.ClusterFigures)
		}
		f := classify.ClusterFigures{Category: category, Representative: representative, Size: 1}
		for _, v := range debits {
			f.Debits = f.Debits.Add(v)
		}
		f.PerBucketDebits = debits
		s.Clusters[id] = f
	}
}

// NewTestSummary builds a small classification summary: one inflow category
// ("Sales") and one outflow category ("Rent") across the given bucket count.
func NewTestSummary(buckets int, opts ...SummaryOption) *classify.Summary {
	s := &classify.Summary{
		Metadata:        classify.Metadata{HasAmounts: true, BucketCount: buckets},
		CategorySummary: map[string]classify.CategoryFigures{},
	}
	WithCategory("Sales", EvenSplit("1300", buckets), nil)(s)
	WithCategory("Rent", nil, EvenSplit("650", buckets))(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ModelOption mutates build options for a test model.
type ModelOption func(*grid.BuildOptions)

func WithStartDate(d time.Time) ModelOption {
	return func(o *grid.BuildOptions) { o.StartDate = d }
}

func WithBucketWidth(w domain.BucketWidth) ModelOption {
	return func(o *grid.BuildOptions) { o.BucketWidth = w }
}

func WithMinCashThreshold(v string) ModelOption {
	return func(o *grid.BuildOptions) { o.MinCashThreshold = Dec(v) }
}

func WithDefaultMethod(m domain.ForecastMethod) ModelOption {
	return func(o *grid.BuildOptions) { o.DefaultMethod = m }
}

// NewTestModel builds a recalculated model from NewTestSummary with a fixed
// Monday start date so bucket labels are deterministic.
func NewTestModel(buckets int, opts ...ModelOption) *domain.Model {
	o := grid.BuildOptions{
		Buckets:   buckets,
		StartDate: time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&o)
	}
	m := grid.Build(NewTestSummary(buckets), o)
	m.RowByLabel(domain.LabelBeginningBalance).Values[0] = Dec("500")
	grid.Recalculate(m)
	return m
}
