package history

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

const (
	defaultMaxWidth = 40 // Default max width for truncated columns
)

// PrintEntriesTable writes entries to w as an aligned table.
func PrintEntriesTable(w io.Writer, entries []HistoryEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tWHEN\tMODE\tINPUT\tRESULT")
	fmt.Fprintln(tw, "──\t────\t────\t─────\t──────")

	for _, entry := range entries {
		outcome := lo.Ternary(entry.Error != "", "error: "+entry.Error, entry.Result)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			entry.ID,
			humanize.Time(entry.CreatedAt),
			entry.Mode,
			truncate(entry.Input, defaultMaxWidth),
			truncate(outcome, defaultMaxWidth),
		)
	}

	return tw.Flush()
}

// truncate shortens s to maxWidth terminal columns, adding an ellipsis if truncated
func truncate(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSpace(s)

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
