package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fortuna/vsteams/internal/bootstrap"
	"github.com/fortuna/vsteams/internal/config"
	"github.com/fortuna/vsteams/internal/export"
	"github.com/fortuna/vsteams/internal/players"
	"github.com/fortuna/vsteams/internal/provider"
	"github.com/fortuna/vsteams/internal/service"
)

const (
	appName    = "vsteams-export"
	appVersion = "1.0.0"
)

type options struct {
	player  string
	id      int
	season  string
	outDir  string
	timeout time.Duration
}

// summarizer is satisfied by *service.VersusService
type summarizer interface {
	Summarize(ctx context.Context, req service.VersusRequest) *service.VersusResult
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(appName + ": ")

	var opts options
	flag.StringVar(&opts.player, "player", "", "Player full name (e.g. \"LeBron James\")")
	flag.IntVar(&opts.id, "id", 0, "Player ID (used when -player is empty)")
	flag.StringVar(&opts.season, "season", string(provider.SeasonAll), "Season (e.g. 2024-25) or ALL")
	flag.StringVar(&opts.outDir, "out", ".", "Directory for the CSV file")
	flag.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Overall timeout")
	flag.Parse()

	if opts.player == "" && opts.id <= 0 {
		log.Fatalf("Specify -player or -id")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sources, err := bootstrap.OpenSources(cfg)
	if err != nil {
		log.Fatalf("Failed to open data provider: %v", err)
	}
	defer sources.Close()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	directory := players.NewDirectory(sources.Players)
	if opts.player != "" {
		if err := directory.Reload(ctx); err != nil {
			log.Fatalf("An error occurred: %v", err)
		}
	}

	versus := service.NewVersusService(sources.Games, directory, cfg.DefaultSeason)

	path, err := run(ctx, opts, versus, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("✓ Wrote %s", path)
}

// run summarizes one player, prints the game log and summary to out, and
// writes the CSV file. It returns the CSV path.
func run(ctx context.Context, opts options, versus summarizer, out io.Writer) (string, error) {
	result := versus.Summarize(ctx, service.VersusRequest{
		PlayerID:   opts.id,
		PlayerName: opts.player,
		Season:     provider.Season(opts.season),
	})
	if !result.OK() {
		return "", fmt.Errorf("%s", result.Message)
	}

	name := result.Player.FullName
	if name == "" {
		name = "player " + strconv.Itoa(result.Player.ID)
	}

	fmt.Fprintf(out, "Game Log: %s (%s)\n\n", name, result.Season)
	if err := export.WriteGameLog(out, result.GameLog); err != nil {
		return "", fmt.Errorf("writing game log: %w", err)
	}

	fmt.Fprintf(out, "\nAverage Performance vs Each Team\n\n")
	if err := export.WriteSummaryTable(out, result.Summary); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}

	path := filepath.Join(opts.outDir, export.CSVFilename(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := export.WriteCSV(f, result.Summary); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}
