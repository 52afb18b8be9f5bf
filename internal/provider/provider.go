package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/fortuna/vsteams/internal/aggregator"
)

// Season identifies the span of games to fetch, e.g. "2024-25"
type Season string

// SeasonAll requests every season a player has played
const SeasonAll Season = "ALL"

// Player is an entry in the league's player list
type Player struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

// GameLogProvider supplies a player's game log for a season
type GameLogProvider interface {
	GameLog(ctx context.Context, playerID int, season Season) ([]aggregator.GameRecord, error)
}

// PlayerSource supplies the list of known players
type PlayerSource interface {
	Players(ctx context.Context) ([]Player, error)
}

// Kind classifies a provider failure
type Kind string

const (
	KindUnavailable Kind = "unavailable"
	KindNotFound    Kind = "not_found"
	KindDecode      Kind = "decode"
)

// FetchError is returned by providers for every failure
type FetchError struct {
	Kind     Kind
	PlayerID int
	Err      error
}

func (e *FetchError) Error() string {
	if e.PlayerID != 0 {
		return fmt.Sprintf("%s fetching player %d: %v", e.Kind, e.PlayerID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a FetchError of kind KindNotFound
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindNotFound
}
