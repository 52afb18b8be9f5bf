package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fortuna/vsteams/internal/aggregator"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []aggregator.SummaryRow{
		{Opponent: "BOS", AvgPoints: 25, AvgRebounds: 7.5, AvgAssists: 7.5, AvgTotal: 40},
		{Opponent: "NYK", AvgPoints: 29.99, AvgRebounds: 5, AvgAssists: 5, AvgTotal: 39.99},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "OPPONENT,Avg Points,Avg Rebounds,Avg Assists,Avg Total Contribution\n" +
		"BOS,25.00,7.50,7.50,40.00\n" +
		"NYK,29.99,5.00,5.00,39.99\n"
	if buf.String() != want {
		t.Errorf("CSV mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != strings.Join(SummaryHeader, ",")+"\n" {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

func TestCSVFilename(t *testing.T) {
	tests := map[string]string{
		"LeBron James":            "LeBron_James_avg_vs_teams.csv",
		"Karl-Anthony Towns":      "Karl-Anthony_Towns_avg_vs_teams.csv",
		"Nikola Jokic":            "Nikola_Jokic_avg_vs_teams.csv",
		"Shai Gilgeous-Alexander": "Shai_Gilgeous-Alexander_avg_vs_teams.csv",
	}
	for name, want := range tests {
		if got := CSVFilename(name); got != want {
			t.Errorf("CSVFilename(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestWriteGameLog(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGameLog(&buf, []aggregator.GameRecord{
		{Date: time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC), Matchup: "LAL @ NOP", Points: 28, Rebounds: 8, Assists: 11},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "GAME_DATE") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "2024-04-14 LAL @ NOP 28 8 11" {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummaryTable(&buf, []aggregator.SummaryRow{
		{Opponent: "BOS", AvgPoints: 25, AvgRebounds: 7.5, AvgAssists: 7.5, AvgTotal: 40},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "40.00") || !strings.Contains(buf.String(), "Avg Total Contribution") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}
