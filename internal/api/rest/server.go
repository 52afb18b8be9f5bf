package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler, corsOrigins []string, logRequests bool) *Server {
	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           NewRouter(handler, corsOrigins, logRequests),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter wires routes and middleware. Request logging is skipped when
// logRequests is false.
func NewRouter(handler *Handler, corsOrigins []string, logRequests bool) *mux.Router {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	if logRequests {
		router.Use(LoggingMiddleware)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Players
	api.HandleFunc("/players", handler.ListPlayers).Methods("GET")
	api.HandleFunc("/players/reload", handler.ReloadPlayers).Methods("POST")
	api.HandleFunc("/players/{playerID:[0-9]+}/gamelog", handler.GetGameLog).Methods("GET")
	api.HandleFunc("/players/{playerID:[0-9]+}/vs-teams", handler.GetVersusTeams).Methods("GET")
	api.HandleFunc("/players/{playerID:[0-9]+}/vs-teams.csv", handler.DownloadVersusTeams).Methods("GET")

	// Lookup by full name: /vs-teams?player=LeBron+James
	api.HandleFunc("/vs-teams", handler.GetVersusTeams).Methods("GET")
	api.HandleFunc("/vs-teams.csv", handler.DownloadVersusTeams).Methods("GET")

	return router
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
