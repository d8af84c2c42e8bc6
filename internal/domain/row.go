package domain

import "github.com/shopspring/decimal"

// Row is one line item in the cash-flow grid. Rows live in a flat arena on
// the Model and reference their rollup parent by ID rather than by pointer.
type Row struct {
	// ID is set for user-created and cluster-derived rows. Fixed structural
	// rows (balances, totals, net flow, headers) have no ID and are
	// identified by their canonical label.
	ID       string
	Label    string
	Kind     RowKind
	Section  Section
	Editable bool

	// IsRollupParent marks a row whose value at every bucket is the sum of
	// its children's values at that bucket.
	IsRollupParent bool

	// ParentID references the owning rollup parent. A child is exclusively
	// owned: deleting the parent cascades to all children.
	ParentID string

	// Values holds one signed amount per time bucket; its length always
	// equals the model's total bucket count.
	Values []decimal.Decimal

	// ForecastOverride is a per-row method override, set only through
	// explicit user action.
	ForecastOverride *ForecastOverride

	// Forecast is the annotation returned by the forecasting collaborator.
	// It is dropped when the forecast is cleared.
	Forecast *ForecastAnnotation
}

// ForecastOverride selects a forecast method (and optional parameters) for a
// single row, overriding the model default.
type ForecastOverride struct {
	Method ForecastMethod
	Params map[string]float64
}

// ForecastAnnotation carries the collaborator's per-row method and optional
// confidence band. Band slices, when present, cover forecast buckets only.
type ForecastAnnotation struct {
	Method ForecastMethod
	Lower  []decimal.Decimal
	Upper  []decimal.Decimal
}

// IsStructural reports whether the row is a fixed structural row (no ID).
// Structural rows are never deleted, only zeroed or recomputed.
func (r *Row) IsStructural() bool {
	return r.ID == ""
}

// Clone returns a deep copy of the row, including values and annotations.
func (r *Row) Clone() *Row {
	c := *r
	c.Values = make([]decimal.Decimal, len(r.Values))
	copy(c.Values, r.Values)
	if r.ForecastOverride != nil {
		o := *r.ForecastOverride
		if r.ForecastOverride.Params != nil {
			o.Params = make(map[string]float64, len(r.ForecastOverride.Params))
			for k, v := range r.ForecastOverride.Params {
				o.Params[k] = v
			}
		}
		c.ForecastOverride = &o
	}
	if r.Forecast != nil {
		a := ForecastAnnotation{Method: r.Forecast.Method}
		if r.Forecast.Lower != nil {
			a.Lower = make([]decimal.Decimal, len(r.Forecast.Lower))
			copy(a.Lower, r.Forecast.Lower)
		}
		if r.Forecast.Upper != nil {
			a.Upper = make([]decimal.Decimal, len(r.Forecast.Upper))
			copy(a.Upper, r.Forecast.Upper)
		}
		c.Forecast = &a
	}
	return &c
}

// ZeroValues resets every bucket of the row to zero.
func (r *Row) ZeroValues() {
	for i := range r.Values {
		r.Values[i] = decimal.Zero
	}
}

// ResizeValues grows or truncates the row's values to n buckets. New buckets
// are zero.
func (r *Row) ResizeValues(n int) {
	if len(r.Values) == n {
		return
	}
	if len(r.Values) > n {
		r.Values = r.Values[:n]
		return
	}
	grown := make([]decimal.Decimal, n)
	copy(grown, r.Values)
	r.Values = grown
}
