package formatter

import (
	"strings"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/export"
)

// RenderModel renders the full grid as an aligned table. With groups the
// buckets are aggregated (e.g. monthly); otherwise forecast bucket headers
// are marked with an asterisk. Running-balance cells are colored against the
// model's minimum cash threshold.
func RenderModel(m *domain.Model, groups []export.Group) string {
	table := export.BuildTable(m, groups)

	headers := append([]string(nil), table.Headers...)
	marked := false
	if groups == nil && m.HasForecast() {
		for i := m.ActualBuckets + 1; i < len(headers); i++ {
			headers[i] += "*"
			marked = true
		}
	}

	rows := make([][]string, len(table.Rows))
	for i, tr := range table.Rows {
		r := m.Rows[i]
		cells := make([]string, 0, len(tr.Values)+1)
		cells = append(cells, RowStyle(r.Kind).Render(tr.Label))
		for _, v := range tr.Values {
			if r.Kind == domain.KindSectionHeader {
				cells = append(cells, "")
				continue
			}
			s := FormatMoney(v)
			if r.Kind == domain.KindRunningBalance {
				s = BalanceStyle(v, m.MinCashThreshold).Render(s)
			}
			cells = append(cells, s)
		}
		rows[i] = cells
	}

	aligns := make([]Alignment, len(headers))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = AlignRight
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, aligns))
	if marked {
		b.WriteString(Dim("* forecast bucket") + "\n")
	}
	return b.String()
}
