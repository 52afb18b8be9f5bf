package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/fortuna/vsteams/internal/provider"
	"github.com/fortuna/vsteams/internal/provider/nbastats"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PROVIDER", "REST_PORT", "NBA_STATS_TIMEOUT", "DEFAULT_SEASON", "CORS_ORIGINS", "REDIS_URL", "SEASON_TYPE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != ProviderNBAStats || cfg.RESTPort != "8080" || cfg.NBAStatsTimeout != 30*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.DefaultSeason != provider.SeasonAll || cfg.RedisURL != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.SeasonType != nbastats.SeasonTypeRegular || cfg.LogLevel != LogLevelInfo || !cfg.RequestLogging() {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROVIDER", "ATLAS")
	t.Setenv("NBA_STATS_TIMEOUT", "5s")
	t.Setenv("DEFAULT_SEASON", "2023-24")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://fortuna.app ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != ProviderAtlas || cfg.NBAStatsTimeout != 5*time.Second || cfg.DefaultSeason != "2023-24" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if want := []string{"http://localhost:3000", "https://fortuna.app"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PROVIDER", "espn")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown provider")
	}

	t.Setenv("PROVIDER", "")
	t.Setenv("NBA_STATS_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for bad timeout")
	}

	t.Setenv("NBA_STATS_TIMEOUT", "")
	t.Setenv("SEASON_TYPE", "Preseason")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown season type")
	}

	t.Setenv("SEASON_TYPE", "")
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown log level")
	}

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REST_PORT", "http")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestLoad_SeasonTypeAndLogLevel(t *testing.T) {
	tests := []struct {
		name       string
		seasonType string
		logLevel   string
		wantLogs   bool
	}{
		{"regular debug", nbastats.SeasonTypeRegular, "debug", true},
		{"playoffs info", nbastats.SeasonTypePlayoffs, "INFO", true},
		{"warn", nbastats.SeasonTypePlayoffs, "warn", false},
		{"error", nbastats.SeasonTypeRegular, "error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PROVIDER", "")
			t.Setenv("SEASON_TYPE", tt.seasonType)
			t.Setenv("LOG_LEVEL", tt.logLevel)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.SeasonType != tt.seasonType {
				t.Errorf("SeasonType = %q, want %q", cfg.SeasonType, tt.seasonType)
			}
			if got := cfg.RequestLogging(); got != tt.wantLogs {
				t.Errorf("RequestLogging() = %v, want %v", got, tt.wantLogs)
			}
		})
	}
}
