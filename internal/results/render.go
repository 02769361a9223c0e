package results

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"medmatch/internal/cluster"
)

// RenderSummary produces a human-readable table of the cluster assignment,
// used by the CLI when stdout is a terminal. Singleton-only runs still list
// every record.
func RenderSummary(clusters []cluster.Cluster) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"cluster", "records", "members", "confidence"})

	for _, c := range clusters {
		members := ""
		for i, id := range c.Members {
			if i > 0 {
				members += ", "
			}
			members += id
		}
		tw.AppendRow(table.Row{
			c.ID,
			len(c.Members),
			members,
			strconv.FormatFloat(c.Confidence, 'f', 4, 64),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	duplicates := 0
	for _, c := range clusters {
		if len(c.Members) > 1 {
			duplicates++
		}
	}
	return fmt.Sprintf("%s\n%d clusters (%d with duplicates)\n", tw.Render(), len(clusters), duplicates)
}
