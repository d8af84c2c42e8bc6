package contract

import (
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/shopspring/decimal"
)

// RowPayload is the wire form of a grid row, shared by the store payloads
// and the forecast collaborator's request/response bodies. Monetary values
// travel as decimal strings.
type RowPayload struct {
	ID             string            `json:"id,omitempty"`
	Label          string            `json:"label"`
	Kind           string            `json:"kind"`
	Section        string            `json:"section"`
	Editable       bool              `json:"editable"`
	IsRollupParent bool              `json:"isRollupParent,omitempty"`
	ParentID       string            `json:"parentId,omitempty"`
	Values         []decimal.Decimal `json:"values"`

	// Method is the per-row forecast method annotation; Lower/Upper are the
	// optional confidence band over the forecast buckets.
	Method string            `json:"method,omitempty"`
	Lower  []decimal.Decimal `json:"lower,omitempty"`
	Upper  []decimal.Decimal `json:"upper,omitempty"`

	// OverrideMethod and OverrideParams carry a user-set per-row forecast
	// override through save/load.
	OverrideMethod string             `json:"overrideMethod,omitempty"`
	OverrideParams map[string]float64 `json:"overrideParams,omitempty"`
}

// FromRow converts a domain row to its wire form.
func FromRow(r *domain.Row) RowPayload {
	p := RowPayload{
		ID:             r.ID,
		Label:          r.Label,
		Kind:           string(r.Kind),
		Section:        string(r.Section),
		Editable:       r.Editable,
		IsRollupParent: r.IsRollupParent,
		ParentID:       r.ParentID,
		Values:         append([]decimal.Decimal(nil), r.Values...),
	}
	if r.Forecast != nil {
		p.Method = string(r.Forecast.Method)
		p.Lower = append([]decimal.Decimal(nil), r.Forecast.Lower...)
		p.Upper = append([]decimal.Decimal(nil), r.Forecast.Upper...)
	}
	if r.ForecastOverride != nil {
		p.OverrideMethod = string(r.ForecastOverride.Method)
		p.OverrideParams = r.ForecastOverride.Params
	}
	return p
}

// ToRow converts a wire row back to the domain form.
func (p RowPayload) ToRow() *domain.Row {
	r := &domain.Row{
		ID:             p.ID,
		Label:          p.Label,
		Kind:           domain.RowKind(p.Kind),
		Section:        domain.Section(p.Section),
		Editable:       p.Editable,
		IsRollupParent: p.IsRollupParent,
		ParentID:       p.ParentID,
		Values:         append([]decimal.Decimal(nil), p.Values...),
	}
	if p.Method != "" || len(p.Lower) > 0 || len(p.Upper) > 0 {
		r.Forecast = &domain.ForecastAnnotation{
			Method: domain.ForecastMethod(p.Method),
			Lower:  append([]decimal.Decimal(nil), p.Lower...),
			Upper:  append([]decimal.Decimal(nil), p.Upper...),
		}
	}
	if p.OverrideMethod != "" {
		r.ForecastOverride = &domain.ForecastOverride{
			Method: domain.ForecastMethod(p.OverrideMethod),
			Params: p.OverrideParams,
		}
	}
	return r
}

// FromRows converts a whole arena.
func FromRows(rows []*domain.Row) []RowPayload {
	out := make([]RowPayload, len(rows))
	for i, r := range rows {
		out[i] = FromRow(r)
	}
	return out
}

// ToRows converts a whole wire arena.
func ToRows(payloads []RowPayload) []*domain.Row {
	out := make([]*domain.Row, len(payloads))
	for i, p := range payloads {
		out[i] = p.ToRow()
	}
	return out
}
