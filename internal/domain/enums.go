package domain

type RowKind string

const (
	KindCategory       RowKind = "category"
	KindSectionHeader  RowKind = "section_header"
	KindSectionTotal   RowKind = "section_total"
	KindNetFlow        RowKind = "net_flow"
	KindRunningBalance RowKind = "running_balance"
)

type Section string

const (
	SectionInflow     Section = "inflow"
	SectionOutflow    Section = "outflow"
	SectionStructural Section = "structural"
)

// ValidRowKinds is the canonical set of accepted row kind strings.
var ValidRowKinds = map[string]bool{
	"category": true, "section_header": true, "section_total": true,
	"net_flow": true, "running_balance": true,
}

type BucketWidth string

const (
	WidthWeekly  BucketWidth = "weekly"
	WidthMonthly BucketWidth = "monthly"
)

type ForecastMethod string

const (
	MethodAuto          ForecastMethod = "auto"
	MethodLinear        ForecastMethod = "linear"
	MethodMovingAverage ForecastMethod = "moving_average"
	MethodSeasonal      ForecastMethod = "seasonal"
	MethodFlat          ForecastMethod = "flat"
)

// ValidForecastMethods is the canonical set of accepted forecast method strings.
var ValidForecastMethods = map[string]bool{
	"auto": true, "linear": true, "moving_average": true,
	"seasonal": true, "flat": true,
}

// Canonical labels for the fixed structural rows. Structural rows carry no
// ID; they are identified by these labels everywhere (engine, store, export).
const (
	LabelBeginningBalance = "Beginning Cash Balance"
	LabelInflowHeader     = "Cash Inflows"
	LabelInflowTotal      = "Total Cash Inflows"
	LabelOutflowHeader    = "Cash Outflows"
	LabelOutflowTotal     = "Total Cash Outflows"
	LabelNetFlow          = "Net Cash Flow"
	LabelEndingBalance    = "Ending Cash Balance"
)
