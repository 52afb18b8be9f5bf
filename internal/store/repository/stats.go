package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/vsteams/internal/store"
)

// StatsRepository handles player game stats data access
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

const gameLogQuery = `
	SELECT
		g.game_id, g.game_date,
		COALESCE(own.abbreviation, '') AS team_abbr,
		COALESCE(opp.abbreviation, '') AS opponent_abbr,
		pgs.team_id = g.home_team_id AS is_home,
		pgs.points, pgs.rebounds, pgs.assists
	FROM player_game_stats pgs
	JOIN games g ON pgs.game_id = g.game_id
	LEFT JOIN teams own ON own.team_id = pgs.team_id
	LEFT JOIN teams opp ON opp.team_id = CASE WHEN pgs.team_id = g.home_team_id THEN g.away_team_id ELSE g.home_team_id END
	LEFT JOIN seasons s ON s.season_id = g.season_id
	WHERE pgs.player_id = $1 AND g.status = 'final'
		AND ($2::text = '' OR s.season_year = $2::text)
	ORDER BY g.game_date DESC
`

// GetPlayerGameLog returns a player's final games, newest first. An empty
// seasonYear returns every season.
func (r *StatsRepository) GetPlayerGameLog(ctx context.Context, playerID int, seasonYear string) ([]*store.GameLogEntry, error) {
	rows, err := r.db.DB().QueryContext(ctx, gameLogQuery, playerID, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("querying game log: %w", err)
	}
	defer rows.Close()

	var entries []*store.GameLogEntry
	for rows.Next() {
		e := &store.GameLogEntry{}
		err := rows.Scan(
			&e.GameID, &e.GameDate,
			&e.TeamAbbr, &e.OpponentAbbr, &e.IsHome,
			&e.Points, &e.Rebounds, &e.Assists,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game log: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
