package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/vsteams/internal/aggregator"
	"github.com/fortuna/vsteams/internal/provider"
	"github.com/google/uuid"
)

// Status tells the caller how a summary request ended
type Status string

const (
	StatusOK              Status = "ok"
	StatusNoData          Status = "no_data"
	StatusUnknownPlayer   Status = "unknown_player"
	StatusInvalidInput    Status = "invalid_input"
	StatusProviderFailure Status = "provider_failure"
)

// MessageNoData is shown when a player has no games in the requested span
const MessageNoData = "No game data found for this player."

// VersusRequest asks for a player's averages against each opponent.
// PlayerName takes precedence over PlayerID when both are set.
type VersusRequest struct {
	PlayerID   int             `json:"player_id,omitempty"`
	PlayerName string          `json:"player_name,omitempty"`
	Season     provider.Season `json:"season,omitempty"`
}

// VersusResult is the outcome of a VersusRequest. GameLog and Summary are set
// only when Status is StatusOK.
type VersusResult struct {
	RequestID   string                  `json:"request_id"`
	Status      Status                  `json:"status"`
	Message     string                  `json:"message,omitempty"`
	Player      provider.Player         `json:"player"`
	Season      provider.Season         `json:"season"`
	GameLog     []aggregator.GameRecord `json:"game_log,omitempty"`
	Summary     []aggregator.SummaryRow `json:"summary,omitempty"`
	GeneratedAt time.Time               `json:"generated_at"`
	Err         error                   `json:"-"`
}

// OK reports whether the request produced a summary
func (r *VersusResult) OK() bool {
	return r.Status == StatusOK
}

// PlayerLookup resolves players by name or ID
type PlayerLookup interface {
	Lookup(name string) (provider.Player, bool)
	ByID(id int) (provider.Player, bool)
}

// Notifier receives every successful result
type Notifier interface {
	NotifySummary(ctx context.Context, result *VersusResult) error
}

// VersusService fetches game logs and summarizes them per opponent
type VersusService struct {
	games         provider.GameLogProvider
	players       PlayerLookup
	notifiers     []Notifier
	defaultSeason provider.Season
}

// NewVersusService creates a service. An empty defaultSeason means every season.
func NewVersusService(games provider.GameLogProvider, players PlayerLookup, defaultSeason provider.Season, notifiers ...Notifier) *VersusService {
	if defaultSeason == "" {
		defaultSeason = provider.SeasonAll
	}
	return &VersusService{
		games:         games,
		players:       players,
		notifiers:     notifiers,
		defaultSeason: defaultSeason,
	}
}

// Summarize resolves the player, fetches the game log and aggregates it.
// Every outcome, including provider failures, is reported through the
// returned result's Status.
func (s *VersusService) Summarize(ctx context.Context, req VersusRequest) *VersusResult {
	result := &VersusResult{
		RequestID:   uuid.NewString(),
		Season:      req.Season,
		GeneratedAt: time.Now().UTC(),
	}
	if result.Season == "" {
		result.Season = s.defaultSeason
	}

	player, status := s.resolvePlayer(req)
	result.Player = player
	if status != StatusOK {
		result.Status = status
		switch status {
		case StatusUnknownPlayer:
			result.Message = fmt.Sprintf("Unknown player %q", req.PlayerName)
		default:
			result.Message = "A player name or positive player ID is required"
		}
		return result
	}

	records, err := s.games.GameLog(ctx, player.ID, result.Season)
	if err != nil {
		result.Err = err
		if provider.IsNotFound(err) {
			result.Status = StatusUnknownPlayer
			result.Message = fmt.Sprintf("Unknown player %d", player.ID)
			return result
		}
		log.Printf("[versus] ⚠️  game log for player %d failed: %v", player.ID, err)
		result.Status = StatusProviderFailure
		result.Message = fmt.Sprintf("An error occurred: %v", err)
		return result
	}

	if len(records) == 0 {
		result.Status = StatusNoData
		result.Message = MessageNoData
		return result
	}

	summary, err := aggregator.Summarize(records)
	if err != nil {
		result.Err = err
		result.Status = StatusInvalidInput
		var invalid *aggregator.InvalidRecordError
		if errors.As(err, &invalid) {
			result.Message = fmt.Sprintf("Game %d in the log has no opponent", invalid.Index+1)
		} else {
			result.Message = err.Error()
		}
		return result
	}

	result.Status = StatusOK
	result.GameLog = records
	result.Summary = summary

	log.Printf("[versus] player %d (%s) season %s: %d games, %d opponents", player.ID, player.FullName, result.Season, len(records), len(summary))

	for _, n := range s.notifiers {
		if err := n.NotifySummary(ctx, result); err != nil {
			log.Printf("[versus] ⚠️  notifier failed for request %s: %v", result.RequestID, err)
		}
	}

	return result
}

func (s *VersusService) resolvePlayer(req VersusRequest) (provider.Player, Status) {
	if req.PlayerName != "" {
		p, ok := s.players.Lookup(req.PlayerName)
		if !ok {
			return provider.Player{FullName: req.PlayerName}, StatusUnknownPlayer
		}
		return p, StatusOK
	}

	if req.PlayerID <= 0 {
		return provider.Player{}, StatusInvalidInput
	}

	// Players missing from the directory are still looked up by ID; the
	// provider decides whether they exist.
	if p, ok := s.players.ByID(req.PlayerID); ok {
		return p, StatusOK
	}
	return provider.Player{ID: req.PlayerID}, StatusOK
}
