package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cashgrid/internal/domain"
)

// resolveModelID resolves a model identifier which can be an exact name
// (case-insensitive), an exact UUID, or a unique UUID prefix.
func resolveModelID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("model ID is required")
	}

	records, err := app.Models.List(ctx)
	if err != nil {
		return "", err
	}

	for _, r := range records {
		if strings.EqualFold(r.Name, input) {
			return r.ID, nil
		}
	}
	for _, r := range records {
		if r.ID == input {
			return r.ID, nil
		}
	}

	var matches []string
	for _, r := range records {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("model not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("model ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// rowIndexByLabel finds the arena index of a row by label (case-insensitive),
// preferring an exact match over a unique prefix.
func rowIndexByLabel(m *domain.Model, label string) (int, error) {
	var matches []int
	for i, r := range m.Rows {
		if strings.EqualFold(r.Label, label) {
			return i, nil
		}
		if strings.HasPrefix(strings.ToLower(r.Label), strings.ToLower(label)) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("row not found: %q", label)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("row label %q is ambiguous (%d matches)", label, len(matches))
	}
}
