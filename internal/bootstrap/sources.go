package bootstrap

import (
	"fmt"
	"log"

	"github.com/fortuna/vsteams/internal/config"
	"github.com/fortuna/vsteams/internal/provider"
	"github.com/fortuna/vsteams/internal/provider/atlas"
	"github.com/fortuna/vsteams/internal/provider/nbastats"
	"github.com/fortuna/vsteams/internal/store"
)

// Sources bundles the configured game log provider and player source
type Sources struct {
	Games   provider.GameLogProvider
	Players provider.PlayerSource

	db *store.Database
}

// Close releases the database connection, if any
func (s *Sources) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// OpenSources builds the provider selected by cfg.Provider
func OpenSources(cfg config.Config) (*Sources, error) {
	switch cfg.Provider {
	case config.ProviderAtlas:
		db, err := store.NewDatabase(cfg.AtlasDSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to Atlas: %w", err)
		}
		log.Println("✓ Connected to Atlas database")

		p := atlas.New(db)
		return &Sources{Games: p, Players: p, db: db}, nil

	case config.ProviderNBAStats:
		client := nbastats.New(cfg.NBAStatsBase, cfg.NBAStatsTimeout,
			nbastats.WithSeasonType(cfg.SeasonType),
			nbastats.WithPlayersSeason(cfg.PlayersSeason),
			nbastats.WithRequestLogging(cfg.RequestLogging()),
		)
		return &Sources{Games: client, Players: client}, nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
