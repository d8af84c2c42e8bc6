package formatter

import (
	"strconv"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/repository"
)

const timestampLayout = "2006-01-02 15:04"

// RenderModelList renders stored model metadata as a table.
func RenderModelList(records []*repository.ModelRecord) string {
	if len(records) == 0 {
		return Dim("No models yet. Create one with 'cashgrid build'.") + "\n"
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Name, r.ID, r.UpdatedAt.Local().Format(timestampLayout)}
	}
	return RenderTable([]string{"Name", "ID", "Updated"}, rows, nil)
}

// RenderVersionList renders a model's version history, newest first.
func RenderVersionList(infos []contract.VersionInfo) string {
	if len(infos) == 0 {
		return Dim("No versions recorded.") + "\n"
	}
	rows := make([][]string, len(infos))
	for i, v := range infos {
		label := v.Label
		if label == "" {
			label = Dim("—")
		}
		rows[i] = []string{
			v.VersionID,
			v.CreatedAt.Local().Format(timestampLayout),
			strconv.Itoa(v.RowCount),
			label,
		}
	}
	return RenderTable([]string{"Version", "Created", "Rows", "Label"}, rows, nil)
}
