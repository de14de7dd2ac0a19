package formatter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/swfz/gh-reporank/internal/models"
)

// RenderTable displays repository details followed by a metrics table.
// Metric groups keep the order they were returned in.
func RenderTable(w io.Writer, info *models.RepoInfo) error {
	fmt.Fprintln(w, info.FullName)
	if info.Description != "" {
		fmt.Fprintln(w, TruncateWithEllipsis(info.Description, 80))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Owner:            %s (%s)\n", info.Owner, info.OwnerURL())
	fmt.Fprintf(w, "Type:             %s\n", info.Type)
	if url := info.LanguageURL(); url != "" {
		fmt.Fprintf(w, "Primary language: %s (%s)\n", info.PrimaryLanguage, url)
	} else {
		fmt.Fprintf(w, "Primary language: %s\n", info.LanguageOrNone())
	}
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header("GROUP", "METRIC", "VALUE", "NOTE")

	for _, group := range info.MetricGroups {
		for i, metric := range group.Metrics {
			name := ""
			if i == 0 {
				name = group.Name
			}
			hint := metric.Hint
			if hint == "" {
				hint = "-"
			}
			row := []interface{}{
				TruncateString(name, 20),
				TruncateString(metric.Name, 24),
				metric.Value,
				TruncateWithEllipsis(hint, 30),
			}
			if err := table.Append(row...); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}
	}

	return table.Render()
}
