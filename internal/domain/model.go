package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Model is the full cash-flow grid: a flat arena of rows in display order
// plus the time-axis state. Rows reference rollup parents by ID; all
// traversal goes through index lookups on the arena.
type Model struct {
	Rows []*Row

	// ActualBuckets and ForecastBuckets are tracked independently; the
	// total bucket count is their sum. ForecastBuckets is zero until a
	// forecast has been merged.
	ActualBuckets   int
	ForecastBuckets int

	StartDate   time.Time
	BucketWidth BucketWidth

	// MinCashThreshold flags buckets whose ending balance falls below it.
	MinCashThreshold decimal.Decimal

	// DefaultMethod is the forecast method sent to the collaborator for
	// rows without a per-row override.
	DefaultMethod ForecastMethod
}

// BucketCount returns the current total number of time buckets.
func (m *Model) BucketCount() int {
	return m.ActualBuckets + m.ForecastBuckets
}

// HasForecast reports whether forecast buckets are currently merged in.
func (m *Model) HasForecast() bool {
	return m.ForecastBuckets > 0
}

// RowByLabel returns the first row with the given label, or nil. Used to
// address the fixed structural rows by their canonical labels.
func (m *Model) RowByLabel(label string) *Row {
	for _, r := range m.Rows {
		if r.Label == label {
			return r
		}
	}
	return nil
}

// RowByID returns the row carrying the given ID, or nil.
func (m *Model) RowByID(id string) *Row {
	if id == "" {
		return nil
	}
	for _, r := range m.Rows {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// IndexOf returns the arena index of the row, or -1.
func (m *Model) IndexOf(row *Row) int {
	for i, r := range m.Rows {
		if r == row {
			return i
		}
	}
	return -1
}

// Children returns the rows owned by the given rollup parent, in display
// order.
func (m *Model) Children(parentID string) []*Row {
	if parentID == "" {
		return nil
	}
	var out []*Row
	for _, r := range m.Rows {
		if r.ParentID == parentID {
			out = append(out, r)
		}
	}
	return out
}

// SectionCategories returns the top-level category rows of a section
// (children are folded into their own parent, not listed).
func (m *Model) SectionCategories(s Section) []*Row {
	var out []*Row
	for _, r := range m.Rows {
		if r.Kind == KindCategory && r.Section == s && r.ParentID == "" {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep snapshot of the model, suitable for undo history.
func (m *Model) Clone() *Model {
	c := *m
	c.Rows = make([]*Row, len(m.Rows))
	for i, r := range m.Rows {
		c.Rows[i] = r.Clone()
	}
	return &c
}
