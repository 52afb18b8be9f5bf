package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fortuna/vsteams/internal/aggregator"
)

const gameDateLayout = "2006-01-02"

// WriteGameLog writes the game log as an aligned text table
func WriteGameLog(w io.Writer, records []aggregator.GameRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "GAME_DATE\tMATCHUP\tPTS\tREB\tAST")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", r.Date.Format(gameDateLayout), r.Matchup, r.Points, r.Rebounds, r.Assists)
	}

	return tw.Flush()
}

// WriteSummaryTable writes per-opponent averages as an aligned text table
func WriteSummaryTable(w io.Writer, rows []aggregator.SummaryRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "OPPONENT\tAvg Points\tAvg Rebounds\tAvg Assists\tAvg Total Contribution\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t\n", r.Opponent, r.AvgPoints, r.AvgRebounds, r.AvgAssists, r.AvgTotal)
	}

	return tw.Flush()
}
