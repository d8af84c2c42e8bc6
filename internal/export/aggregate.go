package export

import (
	"time"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/shopspring/decimal"
)

// Mode selects how a row's values collapse when buckets are grouped into a
// coarser period.
type Mode string

const (
	// ModeSum adds every bucket in the group. Flows, totals and net use it.
	ModeSum Mode = "sum"
	// ModeFirst keeps the first bucket in the group. Beginning balance uses it.
	ModeFirst Mode = "first"
	// ModeLast keeps the last bucket in the group. Ending balance uses it.
	ModeLast Mode = "last"
)

// ModeFor returns the aggregation semantics for a row. The engine never
// reindexes values itself; callers pass the grouping and these hooks decide
// what each coarser bucket means per row.
func ModeFor(r *domain.Row) Mode {
	if r.Kind == domain.KindRunningBalance {
		if r.Label == domain.LabelBeginningBalance {
			return ModeFirst
		}
		return ModeLast
	}
	return ModeSum
}

// Group is a contiguous run of source bucket indices [Start, End) that
// collapses into one coarser bucket.
type Group struct {
	Start int
	End   int
}

// Reduce collapses values into one entry per group using the given mode.
// Groups reaching past the end of values are clamped; empty groups yield zero.
func Reduce(values []decimal.Decimal, groups []Group, mode Mode) []decimal.Decimal {
	out := make([]decimal.Decimal, len(groups))
	for i, g := range groups {
		start, end := g.Start, g.End
		if start < 0 {
			start = 0
		}
		if end > len(values) {
			end = len(values)
		}
		if start >= end {
			continue
		}
		switch mode {
		case ModeFirst:
			out[i] = values[start]
		case ModeLast:
			out[i] = values[end-1]
		default:
			sum := decimal.Zero
			for _, v := range values[start:end] {
				sum = sum.Add(v)
			}
			out[i] = sum
		}
	}
	return out
}

// MonthlyGroups partitions n weekly buckets starting at start into
// calendar-month groups, the usual weekly→monthly roll-up.
func MonthlyGroups(start time.Time, n int) []Group {
	var groups []Group
	cur := Group{Start: 0, End: 0}
	curMonth := start.Month()
	curYear := start.Year()
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, 7*i)
		if d.Year() != curYear || d.Month() != curMonth {
			groups = append(groups, cur)
			cur = Group{Start: i, End: i}
			curMonth = d.Month()
			curYear = d.Year()
		}
		cur.End = i + 1
	}
	if cur.End > cur.Start {
		groups = append(groups, cur)
	}
	return groups
}
