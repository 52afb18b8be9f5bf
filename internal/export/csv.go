package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fortuna/vsteams/internal/aggregator"
)

// SummaryHeader is the CSV header row; the opponent column comes first
var SummaryHeader = []string{
	"OPPONENT",
	"Avg Points",
	"Avg Rebounds",
	"Avg Assists",
	"Avg Total Contribution",
}

// WriteCSV writes rows as CSV, one line per opponent, values with two decimals
func WriteCSV(w io.Writer, rows []aggregator.SummaryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(SummaryHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Opponent,
			decimal(row.AvgPoints),
			decimal(row.AvgRebounds),
			decimal(row.AvgAssists),
			decimal(row.AvgTotal),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing %s: %w", row.Opponent, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVFilename returns the download name for a player's summary,
// e.g. "LeBron_James_avg_vs_teams.csv"
func CSVFilename(playerName string) string {
	return strings.ReplaceAll(playerName, " ", "_") + "_avg_vs_teams.csv"
}

func decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
