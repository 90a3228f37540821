// Package cliutil holds small rendering helpers shared by the CLI's
// subcommands.
package cliutil

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/mftfind/mftfind/internal/coordinator"
)

// PrintVolumeStats renders the coordinator's per-volume breakdown as a
// table, followed by the one-line run summary.
func PrintVolumeStats(w io.Writer, summary coordinator.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Volume", "Records Searched", "Matches", "Elapsed", "Error"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, v := range summary.PerVolume {
		errStr := ""
		if v.Err != nil {
			errStr = v.Err.Error()
		}
		table.Append([]string{
			fmt.Sprintf("%c:", v.Letter),
			fmt.Sprintf("%d", v.Searched),
			fmt.Sprintf("%d", v.Found),
			v.Elapsed.Round(time.Millisecond).String(),
			errStr,
		})
	}
	table.Render()

	fmt.Fprintf(w, "Searched %d records on %d volume(s) in %.3fs. Found %d result(s)\n",
		summary.Searched, summary.Volumes, summary.Elapsed.Seconds(), summary.Found)
}
