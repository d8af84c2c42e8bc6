package session

import "errors"

var (
	// ErrRowNotFound indicates the addressed row index is out of range.
	ErrRowNotFound = errors.New("row not found")

	// ErrBucketOutOfRange indicates the addressed bucket index is out of range.
	ErrBucketOutOfRange = errors.New("bucket index out of range")

	// ErrRowNotEditable indicates the row is computed (rollup parent, total,
	// net flow, ending balance) and rejects direct cell edits.
	ErrRowNotEditable = errors.New("row is not editable")

	// ErrBeginningBucketOnly indicates a beginning-balance edit outside
	// bucket 0, the only independently editable cell in the balance chain.
	ErrBeginningBucketOnly = errors.New("beginning balance is editable at bucket 0 only")

	// ErrCellLocked indicates an actual bucket is locked while a forecast
	// is merged in.
	ErrCellLocked = errors.New("cell is locked while a forecast is active")

	// ErrForecastMismatch indicates a forecast response whose shape does
	// not fit the session's model; the merge is all-or-nothing.
	ErrForecastMismatch = errors.New("forecast response does not match model shape")
)
