package atlas

import (
	"context"
	"log"

	"github.com/fortuna/vsteams/internal/aggregator"
	"github.com/fortuna/vsteams/internal/provider"
	"github.com/fortuna/vsteams/internal/store"
	"github.com/fortuna/vsteams/internal/store/repository"
)

// Provider serves game logs and players from the Atlas database
type Provider struct {
	playerRepo *repository.PlayerRepository
	statsRepo  *repository.StatsRepository
}

// New creates a provider backed by db
func New(db *store.Database) *Provider {
	return &Provider{
		playerRepo: repository.NewPlayerRepository(db),
		statsRepo:  repository.NewStatsRepository(db),
	}
}

// GameLog returns the player's final games, newest first
func (p *Provider) GameLog(ctx context.Context, playerID int, season provider.Season) ([]aggregator.GameRecord, error) {
	seasonYear := string(season)
	if season == provider.SeasonAll {
		seasonYear = ""
	}

	entries, err := p.statsRepo.GetPlayerGameLog(ctx, playerID, seasonYear)
	if err != nil {
		return nil, &provider.FetchError{Kind: provider.KindUnavailable, PlayerID: playerID, Err: err}
	}

	if len(entries) == 0 {
		exists, err := p.playerRepo.Exists(ctx, playerID)
		if err != nil {
			return nil, &provider.FetchError{Kind: provider.KindUnavailable, PlayerID: playerID, Err: err}
		}
		if !exists {
			return nil, &provider.FetchError{Kind: provider.KindNotFound, PlayerID: playerID, Err: errPlayerNotFound}
		}
	}

	records := make([]aggregator.GameRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, ToGameRecord(e))
	}

	log.Printf("[atlas] loaded %d games for player %d (season %q)", len(records), playerID, season)
	return records, nil
}

// Players returns every player in the database
func (p *Provider) Players(ctx context.Context) ([]provider.Player, error) {
	rows, err := p.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, &provider.FetchError{Kind: provider.KindUnavailable, Err: err}
	}

	players := make([]provider.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, provider.Player{
			ID:       row.PlayerID,
			FullName: row.FullName,
			IsActive: row.IsActive(),
		})
	}
	return players, nil
}

// ToGameRecord renders a stored game in the "LAL vs. BOS" / "LAL @ BOS" form
func ToGameRecord(e *store.GameLogEntry) aggregator.GameRecord {
	return aggregator.GameRecord{
		Date:     e.GameDate,
		Matchup:  Matchup(e.TeamAbbr, e.OpponentAbbr, e.IsHome),
		Points:   e.Points,
		Rebounds: e.Rebounds,
		Assists:  e.Assists,
	}
}

// Matchup formats a matchup string from the player's team's point of view.
// An unknown opponent yields an empty matchup.
func Matchup(team, opponent string, home bool) string {
	if opponent == "" {
		return ""
	}
	if home {
		return team + " vs. " + opponent
	}
	return team + " @ " + opponent
}
