package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRowClone_IsDeep(t *testing.T) {
	r := &Row{
		ID:     "r1",
		Label:  "Payroll",
		Kind:   KindCategory,
		Values: []decimal.Decimal{dec("10"), dec("20")},
		ForecastOverride: &ForecastOverride{
			Method: MethodLinear,
			Params: map[string]float64{"window": 4},
		},
		Forecast: &ForecastAnnotation{
			Method: MethodLinear,
			Lower:  []decimal.Decimal{dec("5")},
			Upper:  []decimal.Decimal{dec("15")},
		},
	}

	c := r.Clone()
	c.Values[0] = dec("99")
	c.ForecastOverride.Params["window"] = 8
	c.Forecast.Lower[0] = dec("0")

	assert.True(t, r.Values[0].Equal(dec("10")))
	assert.Equal(t, float64(4), r.ForecastOverride.Params["window"])
	assert.True(t, r.Forecast.Lower[0].Equal(dec("5")))
}

func TestModelClone_IndependentRows(t *testing.T) {
	m := &Model{
		Rows: []*Row{
			{Label: LabelBeginningBalance, Kind: KindRunningBalance, Section: SectionStructural, Values: []decimal.Decimal{dec("100")}},
			{ID: "c1", Label: "Sales", Kind: KindCategory, Section: SectionInflow, Values: []decimal.Decimal{dec("50")}},
		},
		ActualBuckets: 1,
	}

	snap := m.Clone()
	m.Rows[1].Values[0] = dec("77")
	m.Rows[1].Label = "Renamed"

	assert.True(t, snap.Rows[1].Values[0].Equal(dec("50")))
	assert.Equal(t, "Sales", snap.Rows[1].Label)
}

func TestModelLookups(t *testing.T) {
	parent := &Row{ID: "p", Label: "Vendors", Kind: KindCategory, Section: SectionOutflow, IsRollupParent: true}
	childA := &Row{ID: "a", Label: "Acme", Kind: KindCategory, Section: SectionOutflow, ParentID: "p"}
	childB := &Row{ID: "b", Label: "Bolt", Kind: KindCategory, Section: SectionOutflow, ParentID: "p"}
	top := &Row{ID: "t", Label: "Rent", Kind: KindCategory, Section: SectionOutflow}
	m := &Model{Rows: []*Row{parent, childA, childB, top}}

	require.Equal(t, parent, m.RowByID("p"))
	assert.Nil(t, m.RowByID(""))
	assert.Nil(t, m.RowByID("missing"))

	kids := m.Children("p")
	require.Len(t, kids, 2)
	assert.Equal(t, "Acme", kids[0].Label)

	// Children are folded into their parent, not listed as section rows.
	cats := m.SectionCategories(SectionOutflow)
	require.Len(t, cats, 2)
	assert.Equal(t, "Vendors", cats[0].Label)
	assert.Equal(t, "Rent", cats[1].Label)
}

func TestResizeValues(t *testing.T) {
	r := &Row{Values: []decimal.Decimal{dec("1"), dec("2"), dec("3")}}

	r.ResizeValues(5)
	require.Len(t, r.Values, 5)
	assert.True(t, r.Values[4].IsZero())
	assert.True(t, r.Values[2].Equal(dec("3")))

	r.ResizeValues(2)
	require.Len(t, r.Values, 2)
	assert.True(t, r.Values[1].Equal(dec("2")))
}
