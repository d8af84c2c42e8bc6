package grid

import (
	"testing"

	"github.com/alexanderramin/cashgrid/internal/classify"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FixedRowOrder(t *testing.T) {
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 4},
		CategorySummary: map[string]classify.CategoryFigures{
			"Sales":   {Count: 10, Credits: dec("400")},
			"Payroll": {Count: 4, Debits: dec("200")},
		},
	}
	m := Build(s, BuildOptions{Buckets: 4})

	labels := make([]string, len(m.Rows))
	for i, r := range m.Rows {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{
		domain.LabelBeginningBalance,
		domain.LabelInflowHeader,
		"Sales",
		domain.LabelInflowTotal,
		domain.LabelOutflowHeader,
		"Payroll",
		domain.LabelOutflowTotal,
		domain.LabelNetFlow,
		domain.LabelEndingBalance,
	}, labels)
	assert.Empty(t, CheckInvariants(m))
}

func TestBuild_EvenDistributionWithDrift(t *testing.T) {
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 3},
		CategorySummary: map[string]classify.CategoryFigures{
			"Sales": {Count: 1, Credits: dec("100")},
		},
	}
	m := Build(s, BuildOptions{Buckets: 3})

	row := m.RowByLabel("Sales")
	// 100/3 rounds to 33.33; the last bucket absorbs the drift.
	assertValues(t, row, "33.33", "33.33", "33.34")
}

func TestBuild_ProportionalShapeScaled(t *testing.T) {
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 3},
		CategorySummary: map[string]classify.CategoryFigures{
			// Shape sums to 10 but total is 100: scale 10x, keep shape.
			"Sales": {Count: 3, Credits: dec("100"), PerBucketCredits: decs("2", "3", "5")},
		},
	}
	m := Build(s, BuildOptions{Buckets: 3})
	assertValues(t, m.RowByLabel("Sales"), "20", "30", "50")
}

func TestBuild_BothSidedCategoryAppearsTwice(t *testing.T) {
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 2},
		CategorySummary: map[string]classify.CategoryFigures{
			"Transfers": {Count: 6, Credits: dec("100"), Debits: dec("40")},
		},
	}
	m := Build(s, BuildOptions{Buckets: 2})

	var inflow, outflow *domain.Row
	for _, r := range m.Rows {
		if r.Label != "Transfers" {
			continue
		}
		if r.Section == domain.SectionInflow {
			inflow = r
		} else {
			outflow = r
		}
	}
	require.NotNil(t, inflow)
	require.NotNil(t, outflow)
	assertValues(t, inflow, "50", "50")
	assertValues(t, outflow, "20", "20")
}

func TestBuild_CategoriesSortedByTotalDescending(t *testing.T) {
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 2},
		CategorySummary: map[string]classify.CategoryFigures{
			"Small":  {Count: 1, Debits: dec("10")},
			"Large":  {Count: 1, Debits: dec("300")},
			"Medium": {Count: 1, Debits: dec("50")},
		},
	}
	m := Build(s, BuildOptions{Buckets: 2})

	var order []string
	for _, r := range m.Rows {
		if r.Kind == domain.KindCategory && r.Section == domain.SectionOutflow {
			order = append(order, r.Label)
		}
	}
	assert.Equal(t, []string{"Large", "Medium", "Small"}, order)
}

func TestBuild_ClusterChildrenUnderRollupParent(t *testing.T) {
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 2},
		CategorySummary: map[string]classify.CategoryFigures{
			"Vendors": {Count: 8, Debits: dec("100"), PerBucketDebits: decs("60", "40")},
		},
		Clusters: map[string]classify.ClusterFigures{
			"cl-a": {Category: "Vendors", Representative: "ACME", Size: 5, Debits: dec("75"), PerBucketDebits: decs("50", "25")},
			"cl-b": {Category: "Vendors", Representative: "BOLT", Size: 3, Debits: dec("25")},
		},
	}
	m := Build(s, BuildOptions{Buckets: 2})

	parent := m.RowByLabel("Vendors")
	require.NotNil(t, parent)
	assert.True(t, parent.IsRollupParent)
	assert.False(t, parent.Editable)
	require.NotEmpty(t, parent.ID)

	kids := m.Children(parent.ID)
	require.Len(t, kids, 2)
	// Sorted by total descending.
	assert.Equal(t, "ACME", kids[0].Label)
	assert.Equal(t, "cl-a", kids[0].ID)
	assertValues(t, kids[0], "50", "25")

	// BOLT has no per-bucket data: parent shape (60/40) scaled by 25/100.
	assertValues(t, kids[1], "15", "10")

	// Parent re-summed over children by the final recalculation.
	assertValues(t, parent, "65", "35")
	assert.Empty(t, CheckInvariants(m))
}

func TestBuild_DimensionMode(t *testing.T) {
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 2},
		DimensionGroups: map[string]map[string]classify.CategoryFigures{
			"Operating": {
				"Sales":   {Count: 3, Credits: dec("200")},
				"Payroll": {Count: 2, Debits: dec("80")},
			},
			"Savings": {
				"Interest": {Count: 1, Credits: dec("10")},
			},
		},
	}
	m := Build(s, BuildOptions{Buckets: 2})

	var inflowParents []*domain.Row
	for _, r := range m.Rows {
		if r.Kind == domain.KindCategory && r.Section == domain.SectionInflow && r.IsRollupParent {
			inflowParents = append(inflowParents, r)
		}
	}
	require.Len(t, inflowParents, 2)
	assert.Equal(t, "Operating", inflowParents[0].Label)
	assert.Equal(t, "Savings", inflowParents[1].Label)

	kids := m.Children(inflowParents[0].ID)
	require.Len(t, kids, 1)
	assert.Equal(t, "Sales", kids[0].Label)

	// Payroll lands under an outflow-side Operating parent.
	var outflowParent *domain.Row
	for _, r := range m.Rows {
		if r.Section == domain.SectionOutflow && r.IsRollupParent {
			outflowParent = r
		}
	}
	require.NotNil(t, outflowParent)
	assert.Equal(t, "Operating", outflowParent.Label)
	assert.Empty(t, CheckInvariants(m))
}

func TestBuild_PlaceholderFallback(t *testing.T) {
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 5},
		CategorySummary: map[string]classify.CategoryFigures{
			"Payroll": {Count: 2, Debits: dec("100")},
		},
	}
	m := Build(s, BuildOptions{Buckets: 5})

	inflows := m.SectionCategories(domain.SectionInflow)
	require.Len(t, inflows, 2)
	for _, r := range inflows {
		assert.Empty(t, r.Label)
		assert.Empty(t, r.ID)
		assert.True(t, r.Editable)
		require.Len(t, r.Values, 5)
		for _, v := range r.Values {
			assert.True(t, v.IsZero())
		}
	}
}

func TestBuild_NilSummaryDegradesToPlaceholders(t *testing.T) {
	m := Build(nil, BuildOptions{Buckets: 6})

	assert.Len(t, m.SectionCategories(domain.SectionInflow), 2)
	assert.Len(t, m.SectionCategories(domain.SectionOutflow), 4)
	assert.Equal(t, 6, m.ActualBuckets)
	assert.Empty(t, CheckInvariants(m))
}

func TestBuild_ZeroBucketCountDefaults(t *testing.T) {
	m := Build(&classify.Summary{}, BuildOptions{})
	assert.Equal(t, 13, m.ActualBuckets)
	assert.Equal(t, domain.WidthWeekly, m.BucketWidth)
	assert.Equal(t, domain.MethodAuto, m.DefaultMethod)
}

func TestDistribute_ShapeDriftCorrection(t *testing.T) {
	// Shape thirds of 100: 33.33 + 33.33 + 33.34.
	out := distribute(dec("100"), decs("1", "1", "1"), 3)
	sum := decimal.Zero
	for _, v := range out {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(dec("100")))
	assert.True(t, out[2].Equal(dec("33.34")))
}
