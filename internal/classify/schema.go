package classify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Summary is the externally produced aggregate of transactions grouped into
// categories and clusters. It is the model builder's sole input besides the
// target bucket count.
type Summary struct {
	Metadata        Metadata                   `json:"metadata"`
	CategorySummary map[string]CategoryFigures `json:"categorySummary"`
	Clusters        map[string]ClusterFigures  `json:"clusters,omitempty"`

	// DimensionGroups organizes categories under an external dimension
	// (e.g. account, entity). Mutually exclusive with flat-category mode;
	// the caller selects one mode per build.
	DimensionGroups map[string]map[string]CategoryFigures `json:"dimensionGroups,omitempty"`
}

// Metadata describes the shape of the summary.
type Metadata struct {
	HasAmounts   bool     `json:"hasAmounts"`
	BucketCount  int      `json:"bucketCount"`
	BucketLabels []string `json:"bucketLabels,omitempty"`
}

// CategoryFigures holds the aggregate credit/debit totals for one category,
// with optional proportional per-bucket breakdowns.
type CategoryFigures struct {
	Count            int               `json:"count"`
	Credits          decimal.Decimal   `json:"credits,omitempty"`
	Debits           decimal.Decimal   `json:"debits,omitempty"`
	PerBucketCredits []decimal.Decimal `json:"perBucketCredits,omitempty"`
	PerBucketDebits  []decimal.Decimal `json:"perBucketDebits,omitempty"`
}

// ClusterFigures describes a sub-group of transactions inside a category.
// Clusters become child rows under a rollup parent for their category.
type ClusterFigures struct {
	Category         string            `json:"category"`
	Representative   string            `json:"representative"`
	Size             int               `json:"size"`
	Credits          decimal.Decimal   `json:"credits,omitempty"`
	Debits           decimal.Decimal   `json:"debits,omitempty"`
	PerBucketCredits []decimal.Decimal `json:"perBucketCredits,omitempty"`
	PerBucketDebits  []decimal.Decimal `json:"perBucketDebits,omitempty"`
}

// LoadSummary reads and parses a classification summary JSON file.
func LoadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing classification summary: %w", err)
	}
	return &s, nil
}
