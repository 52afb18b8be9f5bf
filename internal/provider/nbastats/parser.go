package nbastats

import (
	"fmt"
	"strings"
	"time"

	"github.com/fortuna/vsteams/internal/aggregator"
	"github.com/fortuna/vsteams/internal/provider"
)

// statsResponse is the envelope every stats.nba.com endpoint returns
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// resultSet returns the named result set, falling back to the first one
func (r statsResponse) resultSet(name string) (*resultSet, error) {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	if len(r.ResultSets) > 0 {
		return &r.ResultSets[0], nil
	}
	return nil, fmt.Errorf("response has no result sets")
}

// columns maps required header names to their positions
func (s *resultSet) columns(names ...string) (map[string]int, error) {
	pos := make(map[string]int, len(s.Headers))
	for i, h := range s.Headers {
		pos[strings.ToUpper(h)] = i
	}

	out := make(map[string]int, len(names))
	for _, n := range names {
		i, ok := pos[n]
		if !ok {
			return nil, fmt.Errorf("result set %q missing column %s", s.Name, n)
		}
		out[n] = i
	}
	return out, nil
}

// Game dates come back as "APR 10, 2024"; month names parse case-insensitively.
var gameDateLayouts = []string{"Jan 02, 2006", "2006-01-02T15:04:05", "2006-01-02"}

func parseGameDate(s string) (time.Time, error) {
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized game date %q", s)
}

func parseGameLog(set *resultSet) ([]aggregator.GameRecord, error) {
	cols, err := set.columns("GAME_DATE", "MATCHUP", "PTS", "REB", "AST")
	if err != nil {
		return nil, err
	}

	records := make([]aggregator.GameRecord, 0, len(set.RowSet))
	for i, row := range set.RowSet {
		if len(row) != len(set.Headers) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(set.Headers))
		}

		dateStr := maybe[string](row[cols["GAME_DATE"]])
		matchup := maybe[string](row[cols["MATCHUP"]])
		if dateStr == nil || matchup == nil {
			return nil, fmt.Errorf("row %d: missing game date or matchup", i)
		}

		date, err := parseGameDate(*dateStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		records = append(records, aggregator.GameRecord{
			Date:     date,
			Matchup:  *matchup,
			Points:   intValue(row[cols["PTS"]]),
			Rebounds: intValue(row[cols["REB"]]),
			Assists:  intValue(row[cols["AST"]]),
		})
	}

	return records, nil
}

func parsePlayers(set *resultSet) ([]provider.Player, error) {
	cols, err := set.columns("PERSON_ID", "DISPLAY_FIRST_LAST", "ROSTERSTATUS")
	if err != nil {
		return nil, err
	}

	players := make([]provider.Player, 0, len(set.RowSet))
	for _, row := range set.RowSet {
		if len(row) != len(set.Headers) {
			continue
		}
		name := maybe[string](row[cols["DISPLAY_FIRST_LAST"]])
		if name == nil || *name == "" {
			continue
		}
		players = append(players, provider.Player{
			ID:       intValue(row[cols["PERSON_ID"]]),
			FullName: *name,
			IsActive: intValue(row[cols["ROSTERSTATUS"]]) == 1,
		})
	}

	return players, nil
}

// intValue reads a JSON number cell; nulls (DNP rows) count as zero
func intValue(v interface{}) int {
	if f := maybe[float64](v); f != nil {
		return int(*f)
	}
	return 0
}

func maybe[T any](x any) *T {
	if x, ok := x.(T); ok {
		return &x
	}
	return nil
}
