package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/vsteams/internal/aggregator"
	"github.com/fortuna/vsteams/internal/export"
	"github.com/fortuna/vsteams/internal/provider"
	"github.com/fortuna/vsteams/internal/service"
	"github.com/gorilla/mux"
)

// Summarizer produces per-opponent summaries
type Summarizer interface {
	Summarize(ctx context.Context, req service.VersusRequest) *service.VersusResult
}

// PlayerDirectory is the player table the API reads and reloads
type PlayerDirectory interface {
	Names() []string
	Search(query string) []provider.Player
	Reload(ctx context.Context) error
	Len() int
	LoadedAt() time.Time
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	versus  Summarizer
	players PlayerDirectory
	version string
}

// NewHandler creates a new handler
func NewHandler(versus Summarizer, players PlayerDirectory, version string) *Handler {
	return &Handler{
		versus:  versus,
		players: players,
		version: version,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "healthy",
		"service":           "vsteams",
		"version":           h.version,
		"players_loaded":    h.players.Len(),
		"players_loaded_at": h.players.LoadedAt(),
	})
}

// ListPlayers returns every player name, or players matching ?q=
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		respondJSON(w, http.StatusOK, map[string]interface{}{"players": h.players.Search(q)})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"names": h.players.Names()})
}

// ReloadPlayers refreshes the player table from its source
func (h *Handler) ReloadPlayers(w http.ResponseWriter, r *http.Request) {
	if err := h.players.Reload(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "Failed to reload players", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players_loaded": h.players.Len(),
		"loaded_at":      h.players.LoadedAt(),
	})
}

// GameLogResponse is the body of the game log endpoint
type GameLogResponse struct {
	Player  provider.Player         `json:"player"`
	Season  provider.Season         `json:"season"`
	Games   int                     `json:"games"`
	GameLog []aggregator.GameRecord `json:"game_log"`
}

// VersusTeamsResponse is the body of the per-opponent summary endpoint
type VersusTeamsResponse struct {
	RequestID string                  `json:"request_id"`
	Player    provider.Player         `json:"player"`
	Season    provider.Season         `json:"season"`
	Games     int                     `json:"games"`
	Summary   []aggregator.SummaryRow `json:"summary"`
}

// GetGameLog returns the player's raw game log
func (h *Handler) GetGameLog(w http.ResponseWriter, r *http.Request) {
	result, ok := h.summarize(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, GameLogResponse{
		Player:  result.Player,
		Season:  result.Season,
		Games:   len(result.GameLog),
		GameLog: result.GameLog,
	})
}

// GetVersusTeams returns the player's averages against each opponent
func (h *Handler) GetVersusTeams(w http.ResponseWriter, r *http.Request) {
	result, ok := h.summarize(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, VersusTeamsResponse{
		RequestID: result.RequestID,
		Player:    result.Player,
		Season:    result.Season,
		Games:     len(result.GameLog),
		Summary:   result.Summary,
	})
}

// DownloadVersusTeams returns the per-opponent averages as a CSV attachment
func (h *Handler) DownloadVersusTeams(w http.ResponseWriter, r *http.Request) {
	result, ok := h.summarize(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, result.Summary); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build CSV", err)
		return
	}

	name := result.Player.FullName
	if name == "" {
		name = "player " + strconv.Itoa(result.Player.ID)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename(name)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// summarize builds the request from the URL, runs it, and writes an error
// response unless the result is OK
func (h *Handler) summarize(w http.ResponseWriter, r *http.Request) (*service.VersusResult, bool) {
	req := service.VersusRequest{
		PlayerName: r.URL.Query().Get("player"),
		Season:     provider.Season(r.URL.Query().Get("season")),
	}

	if idStr, ok := mux.Vars(r)["playerID"]; ok {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid player ID", err)
			return nil, false
		}
		req.PlayerID = id
		req.PlayerName = ""
	}

	result := h.versus.Summarize(r.Context(), req)
	if result.OK() {
		return result, true
	}

	respondJSON(w, statusCode(result.Status), map[string]interface{}{
		"error":      result.Message,
		"reason":     result.Status,
		"request_id": result.RequestID,
	})
	return nil, false
}

func statusCode(s service.Status) int {
	switch s {
	case service.StatusOK:
		return http.StatusOK
	case service.StatusNoData, service.StatusUnknownPlayer:
		return http.StatusNotFound
	case service.StatusInvalidInput:
		return http.StatusUnprocessableEntity
	case service.StatusProviderFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
