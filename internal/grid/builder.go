package grid

import (
	"sort"
	"time"

	"github.com/alexanderramin/cashgrid/internal/classify"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Placeholder row counts when a section has no categories, so the grid
// always has a default shape a user can fill in manually.
const (
	placeholderInflowRows  = 2
	placeholderOutflowRows = 4
)

// BuildOptions configures a model build.
type BuildOptions struct {
	// Buckets is the target actual-bucket count N. When zero, the summary's
	// metadata bucket count is used; when that is also zero the build
	// degrades to a 13-bucket placeholder grid.
	Buckets          int
	StartDate        time.Time
	BucketWidth      domain.BucketWidth
	DefaultMethod    domain.ForecastMethod
	MinCashThreshold decimal.Decimal
}

// Build constructs a well-formed model from a classification summary.
// Missing or malformed input never fails: the build degrades to the
// empty-placeholder grid. The returned model has been recalculated and
// satisfies every invariant.
func Build(s *classify.Summary, opts BuildOptions) *domain.Model {
	n := opts.Buckets
	if n <= 0 && s != nil {
		n = s.Metadata.BucketCount
	}
	if n <= 0 {
		n = 13
	}

	width := opts.BucketWidth
	if width == "" {
		width = domain.WidthWeekly
	}
	method := opts.DefaultMethod
	if method == "" {
		method = domain.MethodAuto
	}

	m := &domain.Model{
		ActualBuckets:    n,
		StartDate:        opts.StartDate,
		BucketWidth:      width,
		DefaultMethod:    method,
		MinCashThreshold: opts.MinCashThreshold,
	}

	var inflows, outflows []*domain.Row
	if s != nil {
		if len(s.DimensionGroups) > 0 {
			inflows, outflows = buildDimensionRows(s, n)
		} else {
			inflows, outflows = buildCategoryRows(s, n)
		}
	}

	if countTopLevel(inflows) == 0 {
		inflows = append(inflows, placeholderRows(domain.SectionInflow, placeholderInflowRows, n)...)
	}
	if countTopLevel(outflows) == 0 {
		outflows = append(outflows, placeholderRows(domain.SectionOutflow, placeholderOutflowRows, n)...)
	}

	m.Rows = append(m.Rows, &domain.Row{
		Label:    domain.LabelBeginningBalance,
		Kind:     domain.KindRunningBalance,
		Section:  domain.SectionStructural,
		Editable: true,
		Values:   make([]decimal.Decimal, n),
	})
	m.Rows = append(m.Rows, headerRow(domain.LabelInflowHeader, domain.SectionInflow, n))
	m.Rows = append(m.Rows, inflows...)
	m.Rows = append(m.Rows, totalRow(domain.LabelInflowTotal, domain.SectionInflow, n))
	m.Rows = append(m.Rows, headerRow(domain.LabelOutflowHeader, domain.SectionOutflow, n))
	m.Rows = append(m.Rows, outflows...)
	m.Rows = append(m.Rows, totalRow(domain.LabelOutflowTotal, domain.SectionOutflow, n))
	m.Rows = append(m.Rows, &domain.Row{
		Label:   domain.LabelNetFlow,
		Kind:    domain.KindNetFlow,
		Section: domain.SectionStructural,
		Values:  make([]decimal.Decimal, n),
	})
	m.Rows = append(m.Rows, &domain.Row{
		Label:   domain.LabelEndingBalance,
		Kind:    domain.KindRunningBalance,
		Section: domain.SectionStructural,
		Values:  make([]decimal.Decimal, n),
	})

	Recalculate(m)
	return m
}

// categoryEntry pairs a built top-level row with its children for sorting.
type categoryEntry struct {
	row      *domain.Row
	children []*domain.Row
	total    decimal.Decimal
}

// buildCategoryRows builds flat-category mode rows: one row per category per
// section it has a non-zero total in, cluster sub-groups as children under a
// rollup parent.
func buildCategoryRows(s *classify.Summary, n int) (inflows, outflows []*domain.Row) {
	clustersByCategory := make(map[string][]string)
	for id, cl := range s.Clusters {
		clustersByCategory[cl.Category] = append(clustersByCategory[cl.Category], id)
	}
	// Map iteration order is random; keep cluster children deterministic.
	for _, ids := range clustersByCategory {
		sort.Strings(ids)
	}

	var inEntries, outEntries []categoryEntry
	for name, fig := range s.CategorySummary {
		if fig.Credits.IsPositive() {
			e := buildSectionEntry(s, name, domain.SectionInflow, fig.Credits, fig.PerBucketCredits, clustersByCategory[name], n)
			inEntries = append(inEntries, e)
		}
		if fig.Debits.IsPositive() {
			e := buildSectionEntry(s, name, domain.SectionOutflow, fig.Debits, fig.PerBucketDebits, clustersByCategory[name], n)
			outEntries = append(outEntries, e)
		}
	}

	return flattenEntries(inEntries), flattenEntries(outEntries)
}

// buildSectionEntry builds one category's row for a single section,
// attaching cluster children that have a total on the same side.
func buildSectionEntry(s *classify.Summary, name string, section domain.Section, total decimal.Decimal, shape []decimal.Decimal, clusterIDs []string, n int) categoryEntry {
	values := distribute(total, shape, n)

	var sideClusters []string
	for _, id := range clusterIDs {
		if sideTotal(s.Clusters[id], section).IsPositive() {
			sideClusters = append(sideClusters, id)
		}
	}

	row := &domain.Row{
		Label:    name,
		Kind:     domain.KindCategory,
		Section:  section,
		Editable: true,
		Values:   values,
	}
	if len(sideClusters) == 0 {
		return categoryEntry{row: row, total: total}
	}

	// Cluster sub-groups make the category a rollup parent. The parent gets
	// a cluster-derived ID so deleting it can cascade.
	row.ID = uuid.New().String()
	row.IsRollupParent = true
	row.Editable = false

	var children []*domain.Row
	for _, id := range sideClusters {
		cl := s.Clusters[id]
		clTotal := sideTotal(cl, section)
		clShape := sideShape(cl, section)

		var clValues []decimal.Decimal
		if len(clShape) == n && shapeSum(clShape).IsPositive() {
			clValues = distribute(clTotal, clShape, n)
		} else {
			// No per-bucket data: inherit the parent's shape scaled by the
			// child's share of the parent total (zero when the parent total
			// is zero).
			clValues = distribute(clTotal, values, n)
		}

		children = append(children, &domain.Row{
			ID:       id,
			Label:    cl.Representative,
			Kind:     domain.KindCategory,
			Section:  section,
			Editable: true,
			ParentID: row.ID,
			Values:   clValues,
		})
	}
	sortChildren(children)

	return categoryEntry{row: row, children: children, total: total}
}

// buildDimensionRows builds dimension-grouped mode: each dimension value is
// a top-level rollup parent per section, its categories are children.
func buildDimensionRows(s *classify.Summary, n int) (inflows, outflows []*domain.Row) {
	dims := make([]string, 0, len(s.DimensionGroups))
	for dim := range s.DimensionGroups {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	var inEntries, outEntries []categoryEntry
	for _, dim := range dims {
		cats := s.DimensionGroups[dim]
		if e, ok := buildDimensionEntry(dim, cats, domain.SectionInflow, n); ok {
			inEntries = append(inEntries, e)
		}
		if e, ok := buildDimensionEntry(dim, cats, domain.SectionOutflow, n); ok {
			outEntries = append(outEntries, e)
		}
	}

	return flattenEntries(inEntries), flattenEntries(outEntries)
}

func buildDimensionEntry(dim string, cats map[string]classify.CategoryFigures, section domain.Section, n int) (categoryEntry, bool) {
	parentID := uuid.New().String()
	var children []*domain.Row
	total := decimal.Zero

	names := make([]string, 0, len(cats))
	for name := range cats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fig := cats[name]
		var catTotal decimal.Decimal
		var shape []decimal.Decimal
		if section == domain.SectionInflow {
			catTotal, shape = fig.Credits, fig.PerBucketCredits
		} else {
			catTotal, shape = fig.Debits, fig.PerBucketDebits
		}
		if !catTotal.IsPositive() {
			continue
		}
		children = append(children, &domain.Row{
			ID:       uuid.New().String(),
			Label:    name,
			Kind:     domain.KindCategory,
			Section:  section,
			Editable: true,
			ParentID: parentID,
			Values:   distribute(catTotal, shape, n),
		})
		total = total.Add(catTotal)
	}
	if len(children) == 0 {
		return categoryEntry{}, false
	}
	sortChildren(children)

	parent := &domain.Row{
		ID:             parentID,
		Label:          dim,
		Kind:           domain.KindCategory,
		Section:        section,
		IsRollupParent: true,
		Values:         make([]decimal.Decimal, n),
	}
	return categoryEntry{row: parent, children: children, total: total}, true
}

// flattenEntries sorts entries by total descending (label ascending on ties)
// and interleaves each parent with its children.
func flattenEntries(entries []categoryEntry) []*domain.Row {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].total.Equal(entries[j].total) {
			return entries[i].total.GreaterThan(entries[j].total)
		}
		return entries[i].row.Label < entries[j].row.Label
	})
	var rows []*domain.Row
	for _, e := range entries {
		rows = append(rows, e.row)
		rows = append(rows, e.children...)
	}
	return rows
}

func sortChildren(children []*domain.Row) {
	totalOf := func(r *domain.Row) decimal.Decimal {
		sum := decimal.Zero
		for _, v := range r.Values {
			sum = sum.Add(v)
		}
		return sum
	}
	sort.SliceStable(children, func(i, j int) bool {
		ti, tj := totalOf(children[i]), totalOf(children[j])
		if !ti.Equal(tj) {
			return ti.GreaterThan(tj)
		}
		return children[i].Label < children[j].Label
	})
}

// distribute spreads total across n buckets. When shape covers all buckets
// and sums to a positive total, the shape is preserved and scaled so the
// buckets sum exactly to total; otherwise the total is split evenly. Either
// way each bucket is rounded to 2 decimals and rounding drift is pushed
// into the final bucket.
func distribute(total decimal.Decimal, shape []decimal.Decimal, n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	if n == 0 {
		return out
	}

	sSum := decimal.Zero
	if len(shape) == n {
		sSum = shapeSum(shape)
	}

	running := decimal.Zero
	if sSum.IsPositive() {
		for t := 0; t < n-1; t++ {
			out[t] = domain.Round2(total.Mul(shape[t]).Div(sSum))
			running = running.Add(out[t])
		}
	} else {
		per := domain.Round2(total.Div(decimal.NewFromInt(int64(n))))
		for t := 0; t < n-1; t++ {
			out[t] = per
			running = running.Add(per)
		}
	}
	out[n-1] = domain.Round2(total.Sub(running))
	return out
}

func shapeSum(shape []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range shape {
		sum = sum.Add(v)
	}
	return sum
}

func sideTotal(cl classify.ClusterFigures, s domain.Section) decimal.Decimal {
	if s == domain.SectionInflow {
		return cl.Credits
	}
	return cl.Debits
}

func sideShape(cl classify.ClusterFigures, s domain.Section) []decimal.Decimal {
	if s == domain.SectionInflow {
		return cl.PerBucketCredits
	}
	return cl.PerBucketDebits
}

func countTopLevel(rows []*domain.Row) int {
	count := 0
	for _, r := range rows {
		if r.ParentID == "" {
			count++
		}
	}
	return count
}

// placeholderRows synthesizes unnamed zero category rows. They carry no ID,
// so they can be edited and zeroed but never deleted.
func placeholderRows(section domain.Section, count, n int) []*domain.Row {
	rows := make([]*domain.Row, count)
	for i := range rows {
		rows[i] = &domain.Row{
			Kind:     domain.KindCategory,
			Section:  section,
			Editable: true,
			Values:   make([]decimal.Decimal, n),
		}
	}
	return rows
}

func headerRow(label string, section domain.Section, n int) *domain.Row {
	return &domain.Row{
		Label:   label,
		Kind:    domain.KindSectionHeader,
		Section: section,
		Values:  make([]decimal.Decimal, n),
	}
}

func totalRow(label string, section domain.Section, n int) *domain.Row {
	return &domain.Row{
		Label:   label,
		Kind:    domain.KindSectionTotal,
		Section: section,
		Values:  make([]decimal.Decimal, n),
	}
}
