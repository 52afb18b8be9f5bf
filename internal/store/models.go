package store

import (
	"database/sql"
	"time"
)

// Player is a row of the players table
type Player struct {
	PlayerID   int            `json:"player_id" db:"player_id"`
	ExternalID string         `json:"external_id" db:"external_id"`
	FullName   string         `json:"full_name" db:"full_name"`
	Status     sql.NullString `json:"status,omitempty" db:"status"`
}

// IsActive reports whether the player is on an active roster
func (p *Player) IsActive() bool {
	return p.Status.Valid && p.Status.String == "active"
}

// GameLogEntry is one final game from a player's perspective, joined with the
// teams that played it
type GameLogEntry struct {
	GameID       int       `json:"game_id" db:"game_id"`
	GameDate     time.Time `json:"game_date" db:"game_date"`
	TeamAbbr     string    `json:"team_abbr" db:"team_abbr"`
	OpponentAbbr string    `json:"opponent_abbr" db:"opponent_abbr"`
	IsHome       bool      `json:"is_home" db:"is_home"`
	Points       int       `json:"points" db:"points"`
	Rebounds     int       `json:"rebounds" db:"rebounds"`
	Assists      int       `json:"assists" db:"assists"`
}
