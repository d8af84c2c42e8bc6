package grid

import (
	"fmt"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/shopspring/decimal"
)

// CheckInvariants verifies every numeric invariant of a recalculated model
// and returns all violations found. A nil result means the model is
// consistent at every bucket.
func CheckInvariants(m *domain.Model) []error {
	var errs []error
	n := m.BucketCount()

	for _, r := range m.Rows {
		if len(r.Values) != n {
			errs = append(errs, fmt.Errorf("row %q: %d values for %d buckets", r.Label, len(r.Values), n))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	begin := m.RowByLabel(domain.LabelBeginningBalance)
	ending := m.RowByLabel(domain.LabelEndingBalance)
	net := m.RowByLabel(domain.LabelNetFlow)
	inflowTotal := m.RowByLabel(domain.LabelInflowTotal)
	outflowTotal := m.RowByLabel(domain.LabelOutflowTotal)
	if begin == nil || ending == nil || net == nil || inflowTotal == nil || outflowTotal == nil {
		return append(errs, fmt.Errorf("model is missing a fixed structural row"))
	}

	for t := 0; t < n; t++ {
		for _, p := range m.Rows {
			if !p.IsRollupParent {
				continue
			}
			sum := decimal.Zero
			for _, c := range m.Children(p.ID) {
				sum = sum.Add(c.Values[t])
			}
			if !p.Values[t].Equal(sum) {
				errs = append(errs, fmt.Errorf("bucket %d: rollup %q = %s, children sum %s", t, p.Label, p.Values[t], sum))
			}
		}

		if got, want := inflowTotal.Values[t], sumTopLevel(m, domain.SectionInflow, t); !got.Equal(want) {
			errs = append(errs, fmt.Errorf("bucket %d: inflow total %s, categories sum %s", t, got, want))
		}
		if got, want := outflowTotal.Values[t], sumTopLevel(m, domain.SectionOutflow, t); !got.Equal(want) {
			errs = append(errs, fmt.Errorf("bucket %d: outflow total %s, categories sum %s", t, got, want))
		}
		if want := inflowTotal.Values[t].Sub(outflowTotal.Values[t]); !net.Values[t].Equal(want) {
			errs = append(errs, fmt.Errorf("bucket %d: net %s, want %s", t, net.Values[t], want))
		}
		if want := begin.Values[t].Add(net.Values[t]); !ending.Values[t].Equal(want) {
			errs = append(errs, fmt.Errorf("bucket %d: ending %s, want %s", t, ending.Values[t], want))
		}
		if t > 0 && !begin.Values[t].Equal(ending.Values[t-1]) {
			errs = append(errs, fmt.Errorf("bucket %d: beginning %s, previous ending %s", t, begin.Values[t], ending.Values[t-1]))
		}
	}

	return errs
}
