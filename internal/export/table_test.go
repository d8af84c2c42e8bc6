package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/alexanderramin/cashgrid/internal/classify"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportModel(t *testing.T) *domain.Model {
	t.Helper()
	s := &classify.Summary{
		Metadata: classify.Metadata{HasAmounts: true, BucketCount: 3},
		CategorySummary: map[string]classify.CategoryFigures{
			"Sales": {Count: 3, Credits: dec("150"), PerBucketCredits: decs("50", "50", "50")},
			"Rent":  {Count: 3, Debits: dec("60"), PerBucketDebits: decs("20", "30", "10")},
		},
		Clusters: map[string]classify.ClusterFigures{
			"c1": {Category: "Rent", Representative: "HQ Lease", Size: 3,
				Debits: dec("60"), PerBucketDebits: decs("20", "30", "10")},
		},
	}
	m := grid.Build(s, grid.BuildOptions{
		Buckets:   3,
		StartDate: time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
	})
	m.RowByLabel(domain.LabelBeginningBalance).Values[0] = dec("100")
	grid.Recalculate(m)
	return m
}

func TestBuildTable_FlattensInArenaOrder(t *testing.T) {
	m := exportModel(t)

	table := BuildTable(m, nil)

	require.Len(t, table.Rows, len(m.Rows))
	assert.Equal(t, domain.LabelBeginningBalance, table.Rows[0].Label)
	assert.Equal(t, []string{"Line Item", "Jul 06", "Jul 13", "Jul 20"}, table.Headers)

	// Cluster children are indented under their rollup parent.
	var parentIdx, childIdx = -1, -1
	for i, r := range table.Rows {
		if r.Label == "Rent" {
			parentIdx = i
		}
		if r.Label == indent+"HQ Lease" {
			childIdx = i
		}
	}
	require.GreaterOrEqual(t, parentIdx, 0)
	require.Greater(t, childIdx, parentIdx, "child should follow its parent, indented")
}

func TestBuildTable_MonthlyAggregation(t *testing.T) {
	m := exportModel(t)
	groups := MonthlyGroups(m.StartDate, m.BucketCount()) // all July

	table := BuildTable(m, groups)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"Line Item", "Jul 2026"}, table.Headers)

	byLabel := func(label string) TableRow {
		for _, r := range table.Rows {
			if r.Label == label {
				return r
			}
		}
		t.Fatalf("row %q not found", label)
		return TableRow{}
	}

	// Flows sum; beginning balance keeps the first value, ending the last.
	assert.True(t, byLabel("Sales").Values[0].Equal(dec("150")))
	assert.True(t, byLabel(domain.LabelBeginningBalance).Values[0].Equal(dec("100")))
	// Ending: 130, 150, 190 per bucket → last is 190.
	assert.True(t, byLabel(domain.LabelEndingBalance).Values[0].Equal(dec("190")))
}

func TestWriteCSV_RoundTripsValues(t *testing.T) {
	m := exportModel(t)
	table := BuildTable(m, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(table.Rows)+1)
	assert.Equal(t, table.Headers, records[0])

	// Values come back as the exact decimal strings that were exported.
	for i, row := range table.Rows {
		record := records[i+1]
		assert.Equal(t, row.Label, record[0])
		for j, v := range row.Values {
			assert.Equal(t, v.String(), record[j+1], "row %q bucket %d", row.Label, j)
		}
	}
}

func TestWriteXLSX_ProducesReadableWorkbook(t *testing.T) {
	m := exportModel(t)
	table := BuildTable(m, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Line Item", label)

	first, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, domain.LabelBeginningBalance, first)

	begin, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "100.00", begin)
}
