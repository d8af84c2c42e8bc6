package contract

// ForecastRequest is sent to the forecasting collaborator. Rows carry
// actual-bucket values only; the collaborator owns all statistics.
type ForecastRequest struct {
	Rows                []RowPayload                  `json:"rows"`
	ActualBucketCount   int                           `json:"actualBucketCount"`
	ForecastBucketCount int                           `json:"forecastBucketCount"`
	Method              string                        `json:"method"`
	PerRowOverrides     map[string]ForecastOverride   `json:"perRowOverrides,omitempty"`
	MethodParams        map[string]float64            `json:"methodParams,omitempty"`
}

// ForecastOverride is a per-row method override keyed by row ID (or by
// canonical label for structural rows).
type ForecastOverride struct {
	Method string             `json:"method"`
	Params map[string]float64 `json:"params,omitempty"`
}

// ForecastResponse is the collaborator's result: the full arena with
// actual+forecast values and per-row method annotations. Confidence bands,
// when present, ride on the rows themselves.
type ForecastResponse struct {
	Rows                []RowPayload      `json:"rows"`
	ActualBucketCount   int               `json:"actualBucketCount"`
	ForecastBucketCount int               `json:"forecastBucketCount"`
	Quality             map[string]string `json:"quality,omitempty"`
}
