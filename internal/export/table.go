package export

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/shopspring/decimal"
)

// Table is the flattened export form of a grid: one label column followed by
// one column per (possibly aggregated) bucket. Writers render it to CSV or
// XLSX without re-reading the model.
type Table struct {
	Headers []string
	Rows    []TableRow
}

// TableRow is one flattened grid row. Label already carries the child
// indentation.
type TableRow struct {
	Label  string
	Values []decimal.Decimal
}

const indent = "  "

// BuildTable flattens a model in arena order. When groups is non-nil the
// buckets collapse per the aggregation semantics of each row kind; a nil
// groups exports buckets one to one.
func BuildTable(m *domain.Model, groups []Group) *Table {
	t := &Table{Headers: headerRow(m, groups)}
	for _, r := range m.Rows {
		values := r.Values
		if groups != nil {
			values = Reduce(r.Values, groups, ModeFor(r))
		}
		t.Rows = append(t.Rows, TableRow{
			Label:  strings.Repeat(indent, rowDepth(m, r)) + r.Label,
			Values: append([]decimal.Decimal(nil), values...),
		})
	}
	return t
}

func headerRow(m *domain.Model, groups []Group) []string {
	headers := []string{"Line Item"}
	if groups == nil {
		for i := 0; i < m.BucketCount(); i++ {
			headers = append(headers, bucketLabel(m, i))
		}
		return headers
	}
	for _, g := range groups {
		headers = append(headers, groupLabel(m, g))
	}
	return headers
}

// bucketLabel derives a display label from the model's start date and width.
func bucketLabel(m *domain.Model, i int) string {
	if m.StartDate.IsZero() {
		return bucketOrdinal(m.BucketWidth, i)
	}
	switch m.BucketWidth {
	case domain.WidthMonthly:
		return m.StartDate.AddDate(0, i, 0).Format("Jan 2006")
	default:
		return m.StartDate.AddDate(0, 0, 7*i).Format("Jan 02")
	}
}

func groupLabel(m *domain.Model, g Group) string {
	if m.StartDate.IsZero() {
		return bucketOrdinal(m.BucketWidth, g.Start)
	}
	// A group spans a calendar period; label it by its first bucket's month.
	return m.StartDate.AddDate(0, 0, 7*g.Start).Format("Jan 2006")
}

func bucketOrdinal(width domain.BucketWidth, i int) string {
	prefix := "W"
	if width == domain.WidthMonthly {
		prefix = "M"
	}
	return prefix + strconv.Itoa(i+1)
}

// rowDepth counts ParentID hops to a parentless row.
func rowDepth(m *domain.Model, r *domain.Row) int {
	depth := 0
	for r != nil && r.ParentID != "" {
		r = m.RowByID(r.ParentID)
		depth++
	}
	return depth
}
