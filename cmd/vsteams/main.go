package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/vsteams/internal/api/rest"
	"github.com/fortuna/vsteams/internal/api/websocket"
	"github.com/fortuna/vsteams/internal/bootstrap"
	"github.com/fortuna/vsteams/internal/config"
	"github.com/fortuna/vsteams/internal/players"
	"github.com/fortuna/vsteams/internal/publisher"
	"github.com/fortuna/vsteams/internal/service"
)

const (
	serviceName    = "vsteams"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Player vs. Team Averages", serviceName, serviceVersion)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sources, err := bootstrap.OpenSources(cfg)
	if err != nil {
		log.Fatalf("Failed to open data provider: %v", err)
	}
	defer sources.Close()

	log.Printf("✓ Using %s provider", cfg.Provider)

	// The player table is loaded once here and again only on POST /api/v1/players/reload.
	directory := players.NewDirectory(sources.Players)
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := directory.Reload(loadCtx); err != nil {
		log.Printf("⚠️  Player list unavailable: %v (lookups by ID still work)", err)
	}
	loadCancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	notifiers := []service.Notifier{hub}

	if cfg.RedisURL != "" {
		redisPublisher, err := publisher.NewRedisPublisher(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis publisher disabled: %v", err)
		} else {
			defer redisPublisher.Close()
			notifiers = append(notifiers, redisPublisher)
			log.Printf("✓ Publishing summaries to %s", publisher.SummaryStream)
		}
	}

	versus := service.NewVersusService(sources.Games, directory, cfg.DefaultSeason, notifiers...)

	restServer := rest.NewServer(cfg.RESTPort, rest.NewHandler(versus, directory, serviceVersion), cfg.CORSOrigins, cfg.RequestLogging())
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	wsServer := websocket.NewServer(hub)
	go func() {
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/summaries", cfg.WSPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}
	cancel()

	log.Printf("%s stopped", serviceName)
}
