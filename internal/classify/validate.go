package classify

import "fmt"

// Validate checks a summary for structural problems. Missing optional fields
// are never errors; only shapes the builder cannot interpret are reported.
// A summary with errors still builds — the builder degrades to the
// placeholder grid — so callers surface these as notices, not failures.
func Validate(s *Summary) []error {
	var errs []error

	if s.Metadata.BucketCount < 0 {
		errs = append(errs, fmt.Errorf("metadata.bucketCount must not be negative"))
	}
	if len(s.Metadata.BucketLabels) > 0 && s.Metadata.BucketCount > 0 &&
		len(s.Metadata.BucketLabels) != s.Metadata.BucketCount {
		errs = append(errs, fmt.Errorf("metadata.bucketLabels: %d labels for %d buckets",
			len(s.Metadata.BucketLabels), s.Metadata.BucketCount))
	}
	if len(s.CategorySummary) > 0 && len(s.DimensionGroups) > 0 {
		errs = append(errs, fmt.Errorf("categorySummary and dimensionGroups are mutually exclusive"))
	}

	for name, fig := range s.CategorySummary {
		errs = append(errs, validateFigures("categorySummary."+name, fig, s.Metadata.BucketCount)...)
	}
	for id, cl := range s.Clusters {
		prefix := fmt.Sprintf("clusters.%s", id)
		if cl.Category == "" {
			errs = append(errs, fmt.Errorf("%s.category is required", prefix))
		}
		if cl.Size < 0 {
			errs = append(errs, fmt.Errorf("%s.size must not be negative", prefix))
		}
		fig := CategoryFigures{
			Credits: cl.Credits, Debits: cl.Debits,
			PerBucketCredits: cl.PerBucketCredits, PerBucketDebits: cl.PerBucketDebits,
		}
		errs = append(errs, validateFigures(prefix, fig, s.Metadata.BucketCount)...)
	}
	for dim, cats := range s.DimensionGroups {
		for name, fig := range cats {
			prefix := fmt.Sprintf("dimensionGroups.%s.%s", dim, name)
			errs = append(errs, validateFigures(prefix, fig, s.Metadata.BucketCount)...)
		}
	}

	return errs
}

func validateFigures(prefix string, fig CategoryFigures, buckets int) []error {
	var errs []error
	if buckets > 0 {
		if n := len(fig.PerBucketCredits); n > 0 && n != buckets {
			errs = append(errs, fmt.Errorf("%s.perBucketCredits: %d entries for %d buckets", prefix, n, buckets))
		}
		if n := len(fig.PerBucketDebits); n > 0 && n != buckets {
			errs = append(errs, fmt.Errorf("%s.perBucketDebits: %d entries for %d buckets", prefix, n, buckets))
		}
	}
	return errs
}
