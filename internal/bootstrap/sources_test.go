package bootstrap

import (
	"testing"

	"github.com/fortuna/vsteams/internal/config"
	"github.com/fortuna/vsteams/internal/provider/nbastats"
)

func TestOpenSources_NBAStats(t *testing.T) {
	src, err := OpenSources(config.Config{Provider: config.ProviderNBAStats, NBAStatsBase: "http://127.0.0.1:0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer src.Close()

	if _, ok := src.Games.(*nbastats.Client); !ok {
		t.Errorf("games provider has type %T", src.Games)
	}
	if src.Players == nil {
		t.Error("expected a player source")
	}
}

func TestOpenSources_Unknown(t *testing.T) {
	if _, err := OpenSources(config.Config{Provider: "espn"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
