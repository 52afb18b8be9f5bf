package aggregator

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func rec(matchup string, pts, reb, ast int) GameRecord {
	return GameRecord{Matchup: matchup, Points: pts, Rebounds: reb, Assists: ast}
}

func TestOpponent(t *testing.T) {
	tests := []struct {
		matchup string
		want    string
	}{
		{"LAL @ BOS", "BOS"},
		{"LAL vs. BOS", "BOS"},
		{"  GSW   vs.  PHX  ", "PHX"},
		{"BOS", "BOS"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		got := GameRecord{Matchup: tt.matchup}.Opponent()
		if got != tt.want {
			t.Errorf("Opponent(%q) = %q, want %q", tt.matchup, got, tt.want)
		}
	}
}

func TestSummarize_SingleOpponent(t *testing.T) {
	rows, err := Summarize([]GameRecord{
		rec("LAL @ BOS", 20, 5, 5),
		rec("LAL @ BOS", 30, 10, 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []SummaryRow{{
		Opponent:    "BOS",
		AvgPoints:   25.0,
		AvgRebounds: 7.5,
		AvgAssists:  7.5,
		AvgTotal:    40.0,
		Games:       2,
	}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("got %+v, want %+v", rows, want)
	}
}

func TestSummarize_OrdersByTotalDescending(t *testing.T) {
	// 99 games at 40 and one at 39 against NYK averages 39.99.
	var records []GameRecord
	for i := 0; i < 99; i++ {
		records = append(records, rec("LAL vs. NYK", 30, 5, 5))
	}
	records = append(records, rec("LAL @ NYK", 29, 5, 5))
	records = append(records, rec("LAL @ MIA", 30, 5, 5))

	rows, err := Summarize(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Opponent != "MIA" || rows[0].AvgTotal != 40.0 {
		t.Errorf("first row = %+v, want MIA at 40.00", rows[0])
	}
	if rows[1].Opponent != "NYK" || rows[1].AvgTotal != 39.99 {
		t.Errorf("second row = %+v, want NYK at 39.99", rows[1])
	}
	if rows[1].AvgPoints != 29.99 {
		t.Errorf("NYK avg points = %v, want 29.99", rows[1].AvgPoints)
	}
}

func TestSummarize_Empty(t *testing.T) {
	for name, input := range map[string][]GameRecord{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			rows, err := Summarize(input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rows == nil || len(rows) != 0 {
				t.Errorf("expected empty non-nil result, got %#v", rows)
			}
		})
	}
}

func TestSummarize_TiesKeepFirstAppearance(t *testing.T) {
	rows, err := Summarize([]GameRecord{
		rec("LAL @ DEN", 10, 0, 0),
		rec("LAL @ UTA", 20, 5, 5),
		rec("LAL @ SAC", 10, 0, 0),
		rec("LAL @ POR", 30, 0, 0),
		rec("LAL @ DAL", 10, 0, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, r := range rows {
		got = append(got, r.Opponent)
	}
	want := []string{"UTA", "POR", "DEN", "SAC", "DAL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSummarize_CaseSensitiveKeys(t *testing.T) {
	rows, err := Summarize([]GameRecord{
		rec("LAL @ BOS", 10, 0, 0),
		rec("LAL @ bos", 10, 0, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected BOS and bos as separate rows, got %+v", rows)
	}
}

func TestSummarize_Rounding(t *testing.T) {
	// 10/3 = 3.333.., 20/3 = 6.666.., 1/8 = 0.125 rounds away from zero
	rows, err := Summarize([]GameRecord{
		rec("LAL @ OKC", 3, 7, 1),
		rec("LAL @ OKC", 3, 7, 0),
		rec("LAL @ OKC", 4, 6, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := rows[0]
	if r.AvgPoints != 3.33 || r.AvgRebounds != 6.67 || r.AvgAssists != 0.33 || r.AvgTotal != 10.33 {
		t.Errorf("unexpected rounding: %+v", r)
	}

	if got := Round2(0.125); got != 0.13 {
		t.Errorf("Round2(0.125) = %v, want 0.13", got)
	}
}

func TestSummarize_InvalidMatchup(t *testing.T) {
	_, err := Summarize([]GameRecord{
		rec("LAL @ BOS", 10, 0, 0),
		rec("LAL @ BOS", 12, 0, 0),
		rec(" ", 10, 0, 0),
	})

	var invalid *InvalidRecordError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRecordError, got %v", err)
	}
	if invalid.Index != 2 {
		t.Errorf("index = %d, want 2", invalid.Index)
	}
}

func randomRecords(r *rand.Rand, n int) []GameRecord {
	teams := []string{"BOS", "NYK", "MIA", "PHI", "CHI", "DEN", "PHX"}
	out := make([]GameRecord, n)
	for i := range out {
		sep := "@"
		if r.Intn(2) == 0 {
			sep = "vs."
		}
		out[i] = rec("LAL "+sep+" "+teams[r.Intn(len(teams))], r.Intn(50), r.Intn(20), r.Intn(15))
	}
	return out
}

func TestSummarize_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		records := randomRecords(r, 1+r.Intn(80))

		rows, err := Summarize(records)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", iter, err)
		}

		games := 0
		for i, row := range rows {
			games += row.Games

			sum := row.AvgPoints + row.AvgRebounds + row.AvgAssists
			if math.Abs(sum-row.AvgTotal) > 0.01+1e-9 {
				t.Errorf("iteration %d: %s total %v differs from component sum %v", iter, row.Opponent, row.AvgTotal, sum)
			}
			if i > 0 && rows[i-1].AvgTotal < row.AvgTotal {
				t.Errorf("iteration %d: rows not sorted at %d", iter, i)
			}
		}
		if games != len(records) {
			t.Errorf("iteration %d: grouped %d games, input had %d", iter, games, len(records))
		}

		again, _ := Summarize(records)
		if !reflect.DeepEqual(rows, again) {
			t.Errorf("iteration %d: repeated call differs", iter)
		}
	}
}
