package grid

import (
	"testing"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decs(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = dec(s)
	}
	return out
}

func assertValues(t *testing.T, row *domain.Row, want ...string) {
	t.Helper()
	require.NotNil(t, row)
	require.Len(t, row.Values, len(want))
	for i, w := range want {
		assert.True(t, row.Values[i].Equal(dec(w)),
			"%s bucket %d: got %s want %s", row.Label, i, row.Values[i], w)
	}
}

// threeBucketModel builds the hand-made grid used by the balance chain
// tests: beginning 100, inflow 50/50/50, outflow 20/30/10.
func threeBucketModel() *domain.Model {
	return &domain.Model{
		ActualBuckets: 3,
		Rows: []*domain.Row{
			{Label: domain.LabelBeginningBalance, Kind: domain.KindRunningBalance, Section: domain.SectionStructural, Editable: true, Values: decs("100", "0", "0")},
			{Label: domain.LabelInflowHeader, Kind: domain.KindSectionHeader, Section: domain.SectionInflow, Values: decs("0", "0", "0")},
			{ID: "in1", Label: "Sales", Kind: domain.KindCategory, Section: domain.SectionInflow, Editable: true, Values: decs("50", "50", "50")},
			{Label: domain.LabelInflowTotal, Kind: domain.KindSectionTotal, Section: domain.SectionInflow, Values: decs("0", "0", "0")},
			{Label: domain.LabelOutflowHeader, Kind: domain.KindSectionHeader, Section: domain.SectionOutflow, Values: decs("0", "0", "0")},
			{ID: "out1", Label: "Rent", Kind: domain.KindCategory, Section: domain.SectionOutflow, Editable: true, Values: decs("20", "30", "10")},
			{Label: domain.LabelOutflowTotal, Kind: domain.KindSectionTotal, Section: domain.SectionOutflow, Values: decs("0", "0", "0")},
			{Label: domain.LabelNetFlow, Kind: domain.KindNetFlow, Section: domain.SectionStructural, Values: decs("0", "0", "0")},
			{Label: domain.LabelEndingBalance, Kind: domain.KindRunningBalance, Section: domain.SectionStructural, Values: decs("0", "0", "0")},
		},
	}
}

func TestRecalculate_BalanceChain(t *testing.T) {
	m := threeBucketModel()
	Recalculate(m)

	assertValues(t, m.RowByLabel(domain.LabelNetFlow), "30", "20", "40")
	assertValues(t, m.RowByLabel(domain.LabelEndingBalance), "130", "150", "190")
	assertValues(t, m.RowByLabel(domain.LabelBeginningBalance), "100", "130", "150")
	assert.Empty(t, CheckInvariants(m))
}

func TestRecalculate_Idempotent(t *testing.T) {
	m := threeBucketModel()
	Recalculate(m)
	first := m.Clone()
	Recalculate(m)

	for i, r := range m.Rows {
		for tt, v := range r.Values {
			assert.True(t, v.Equal(first.Rows[i].Values[tt]),
				"row %q bucket %d changed on second pass", r.Label, tt)
		}
	}
}

func TestRecalculate_RollupParentSums(t *testing.T) {
	m := threeBucketModel()
	parent := &domain.Row{
		ID: "p1", Label: "Vendors", Kind: domain.KindCategory,
		Section: domain.SectionOutflow, IsRollupParent: true,
		Values: decs("0", "0", "0"),
	}
	c1 := &domain.Row{ID: "c1", Label: "Acme", Kind: domain.KindCategory, Section: domain.SectionOutflow, Editable: true, ParentID: "p1", Values: decs("5", "6", "7")}
	c2 := &domain.Row{ID: "c2", Label: "Bolt", Kind: domain.KindCategory, Section: domain.SectionOutflow, Editable: true, ParentID: "p1", Values: decs("1", "2", "3")}
	m.Rows = append(m.Rows[:6], append([]*domain.Row{parent, c1, c2}, m.Rows[6:]...)...)

	Recalculate(m)

	assertValues(t, parent, "6", "8", "10")
	assertValues(t, m.RowByLabel(domain.LabelOutflowTotal), "26", "38", "20")
	assert.Empty(t, CheckInvariants(m))
}

func TestRecalculate_NestedRollups(t *testing.T) {
	m := threeBucketModel()
	outer := &domain.Row{ID: "outer", Label: "Ops", Kind: domain.KindCategory, Section: domain.SectionOutflow, IsRollupParent: true, Values: decs("0", "0", "0")}
	inner := &domain.Row{ID: "inner", Label: "Cloud", Kind: domain.KindCategory, Section: domain.SectionOutflow, IsRollupParent: true, ParentID: "outer", Values: decs("0", "0", "0")}
	leaf := &domain.Row{ID: "leaf", Label: "Compute", Kind: domain.KindCategory, Section: domain.SectionOutflow, Editable: true, ParentID: "inner", Values: decs("4", "4", "4")}
	m.Rows = append(m.Rows[:6], append([]*domain.Row{outer, inner, leaf}, m.Rows[6:]...)...)

	Recalculate(m)

	// Inner sums before outer: leaves first.
	assertValues(t, inner, "4", "4", "4")
	assertValues(t, outer, "4", "4", "4")
	assert.Empty(t, CheckInvariants(m))
}

func TestRecalculate_ExpandsShortRows(t *testing.T) {
	m := threeBucketModel()
	m.ForecastBuckets = 2
	Recalculate(m)

	for _, r := range m.Rows {
		assert.Len(t, r.Values, 5, "row %q", r.Label)
	}
	// New buckets carry zero flows; the balance chain extends flat.
	assertValues(t, m.RowByLabel(domain.LabelEndingBalance), "130", "150", "190", "190", "190")
}

func TestRecalculate_DoesNotTouchCategoryRows(t *testing.T) {
	m := threeBucketModel()
	Recalculate(m)
	assertValues(t, m.RowByID("in1"), "50", "50", "50")
	assertValues(t, m.RowByID("out1"), "20", "30", "10")
}
