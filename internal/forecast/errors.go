package forecast

import "errors"

var (
	// ErrUnavailable indicates the forecast service is unreachable.
	ErrUnavailable = errors.New("forecast service unavailable")

	// ErrTimeout indicates the forecast request exceeded the configured timeout.
	ErrTimeout = errors.New("forecast request timed out")

	// ErrRejected indicates the service refused the request body, typically
	// because the submitted grid has too few actual buckets to fit a model.
	ErrRejected = errors.New("forecast request rejected")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("forecast retry attempts exhausted")
)
