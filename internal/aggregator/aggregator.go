package aggregator

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// GameRecord is one game in a player's game log
type GameRecord struct {
	Date     time.Time `json:"game_date"`
	Matchup  string    `json:"matchup"`
	Points   int       `json:"points"`
	Rebounds int       `json:"rebounds"`
	Assists  int       `json:"assists"`
}

// Opponent returns the opponent abbreviation, the last token of the matchup
// ("LAL @ BOS" -> "BOS"). A matchup without whitespace is returned whole.
func (g GameRecord) Opponent() string {
	fields := strings.Fields(g.Matchup)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Total returns points + rebounds + assists
func (g GameRecord) Total() int {
	return g.Points + g.Rebounds + g.Assists
}

// SummaryRow holds a player's averages against one opponent
type SummaryRow struct {
	Opponent    string  `json:"opponent"`
	AvgPoints   float64 `json:"avg_points"`
	AvgRebounds float64 `json:"avg_rebounds"`
	AvgAssists  float64 `json:"avg_assists"`
	AvgTotal    float64 `json:"avg_total"`
	Games       int     `json:"games"`
}

// InvalidRecordError reports a game record whose matchup has no opponent token
type InvalidRecordError struct {
	Index   int
	Matchup string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("record %d: matchup %q has no opponent", e.Index, e.Matchup)
}

type group struct {
	opponent                         string
	games                            int
	points, rebounds, assists, total int
}

// Summarize groups records by opponent and returns the per-opponent averages
// ordered by average total contribution, highest first. Opponents with equal
// totals keep the order in which they first appear in records.
//
// An empty input yields an empty result and no error.
func Summarize(records []GameRecord) ([]SummaryRow, error) {
	groups := make([]*group, 0)
	index := make(map[string]*group)

	for i, rec := range records {
		opp := rec.Opponent()
		if opp == "" {
			return nil, &InvalidRecordError{Index: i, Matchup: rec.Matchup}
		}

		g, ok := index[opp]
		if !ok {
			g = &group{opponent: opp}
			index[opp] = g
			groups = append(groups, g)
		}
		g.games++
		g.points += rec.Points
		g.rebounds += rec.Rebounds
		g.assists += rec.Assists
		g.total += rec.Total()
	}

	rows := make([]SummaryRow, 0, len(groups))
	for _, g := range groups {
		n := float64(g.games)
		rows = append(rows, SummaryRow{
			Opponent:    g.opponent,
			AvgPoints:   Round2(float64(g.points) / n),
			AvgRebounds: Round2(float64(g.rebounds) / n),
			AvgAssists:  Round2(float64(g.assists) / n),
			AvgTotal:    Round2(float64(g.total) / n),
			Games:       g.games,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgTotal > rows[j].AvgTotal
	})

	return rows, nil
}

// Round2 rounds to two decimal places, halves away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
