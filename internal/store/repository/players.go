package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/vsteams/internal/store"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// ListAll returns every NBA player ordered by full name
func (r *PlayerRepository) ListAll(ctx context.Context) ([]*store.Player, error) {
	query := `
		SELECT player_id, external_id, full_name, status
		FROM players
		WHERE sport = 'basketball_nba'
		ORDER BY full_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		if err := rows.Scan(&player.PlayerID, &player.ExternalID, &player.FullName, &player.Status); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}

// Exists reports whether a player with the given ID is known
func (r *PlayerRepository) Exists(ctx context.Context, playerID int) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM players WHERE player_id = $1)", playerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking player %d: %w", playerID, err)
	}
	return exists, nil
}
