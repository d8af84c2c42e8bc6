package grid

import (
	"sort"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/shopspring/decimal"
)

// Recalculate restores every derived-row invariant in place: rollup parents
// equal the sum of their children, section totals equal the sum of their
// top-level categories, net flow equals inflow minus outflow, and the
// balance chain links each bucket's beginning balance to the previous
// ending balance. Rows the user edits directly are never altered; only
// derived rows are written. The pass is idempotent.
//
// Buckets are processed in increasing order because the balance chain is
// inherently sequential: bucket t's beginning balance is bucket t-1's
// ending balance. Bucket 0's beginning balance is the one independently
// editable cell in the chain and is left untouched.
func Recalculate(m *domain.Model) {
	n := m.BucketCount()
	for _, r := range m.Rows {
		r.ResizeValues(n)
	}

	begin := m.RowByLabel(domain.LabelBeginningBalance)
	ending := m.RowByLabel(domain.LabelEndingBalance)
	net := m.RowByLabel(domain.LabelNetFlow)
	inflowTotal := m.RowByLabel(domain.LabelInflowTotal)
	outflowTotal := m.RowByLabel(domain.LabelOutflowTotal)

	parents := rollupParentsLeavesFirst(m)
	childrenOf := make(map[string][]*domain.Row, len(parents))
	for _, p := range parents {
		childrenOf[p.ID] = m.Children(p.ID)
	}

	for t := 0; t < n; t++ {
		for _, p := range parents {
			sum := decimal.Zero
			for _, c := range childrenOf[p.ID] {
				sum = sum.Add(c.Values[t])
			}
			p.Values[t] = sum
		}

		if inflowTotal != nil {
			inflowTotal.Values[t] = sumTopLevel(m, domain.SectionInflow, t)
		}
		if outflowTotal != nil {
			outflowTotal.Values[t] = sumTopLevel(m, domain.SectionOutflow, t)
		}
		if net != nil && inflowTotal != nil && outflowTotal != nil {
			net.Values[t] = inflowTotal.Values[t].Sub(outflowTotal.Values[t])
		}
		if begin != nil && ending != nil {
			if t > 0 {
				begin.Values[t] = ending.Values[t-1]
			}
			if net != nil {
				ending.Values[t] = begin.Values[t].Add(net.Values[t])
			}
		}
	}
}

// sumTopLevel sums the section's parentless category rows at bucket t.
// Children are already folded into their own rollup parent.
func sumTopLevel(m *domain.Model, s domain.Section, t int) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range m.Rows {
		if r.Kind == domain.KindCategory && r.Section == s && r.ParentID == "" {
			sum = sum.Add(r.Values[t])
		}
	}
	return sum
}

// rollupParentsLeavesFirst returns rollup parents ordered so that nested
// parents are summed before their ancestors.
func rollupParentsLeavesFirst(m *domain.Model) []*domain.Row {
	depth := func(r *domain.Row) int {
		d := 0
		for cur := r; cur.ParentID != ""; {
			next := m.RowByID(cur.ParentID)
			if next == nil {
				break
			}
			cur = next
			d++
		}
		return d
	}

	var parents []*domain.Row
	for _, r := range m.Rows {
		if r.IsRollupParent {
			parents = append(parents, r)
		}
	}
	sort.SliceStable(parents, func(i, j int) bool {
		return depth(parents[i]) > depth(parents[j])
	})
	return parents
}
