// Package api exposes the running game over HTTP for the browser client.
// GET endpoints are read-only state views; POST endpoints issue commands.
// Command preconditions that fail (cooldowns, unaffordable costs, invalid
// tiles) return 200 with ok=false so the client can surface the reason
// without treating it as a transport error.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/talgya/stonefall/internal/chronicle"
	"github.com/talgya/stonefall/internal/game"
	"github.com/talgya/stonefall/internal/world"
)

// Server serves the game state over HTTP.
type Server struct {
	Game *game.Game
	DB   *chronicle.DB // optional, enables the persisted-history endpoint
	Port int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	resets := newResetGuard(10, time.Minute)

	mux := http.NewServeMux()

	// Read-only state views.
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/buildings", s.handleBuildings)
	mux.HandleFunc("/api/v1/chronicle", s.handleChronicle)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/military", s.handleMilitary)
	mux.HandleFunc("/api/v1/era", s.handleEra)

	// Commands.
	mux.HandleFunc("/api/v1/buildings/", s.handleBuildingDelete)
	mux.HandleFunc("/api/v1/placement", s.handlePlacement)
	mux.HandleFunc("/api/v1/pause", s.handlePause)
	mux.HandleFunc("/api/v1/speed", s.handleSpeed)
	mux.HandleFunc("/api/v1/era/advance", s.handleEraAdvance)
	mux.HandleFunc("/api/v1/combat/attack", s.handleAttack)
	mux.HandleFunc("/api/v1/combat/defend", s.handleDefend)
	mux.HandleFunc("/api/v1/events/resolve", s.handleEventResolve)
	mux.HandleFunc("/api/v1/reset", resets.wrap(s.handleReset))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleState returns the full game snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Game.Snapshot())
}

// handleMap returns the terrain grid.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	m := s.Game.Map()
	writeJSON(w, map[string]any{
		"width":   m.Width,
		"height":  m.Height,
		"tiles":   m.Tiles,
		"terrain": terrainSummary(m),
	})
}

// handleBuildings serves GET (list + catalog) and POST (place).
func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]any{
			"buildings":   s.Game.Buildings(),
			"definitions": game.Definitions,
		})
	case http.MethodPost:
		var req struct {
			Type string `json:"type"`
			Col  int    `json:"col"`
			Row  int    `json:"row"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		t := game.BuildingType(req.Type)
		if _, ok := game.Definitions[t]; !ok {
			http.Error(w, "unknown building type", http.StatusBadRequest)
			return
		}
		placed, reason := s.Game.PlaceBuilding(t, req.Col, req.Row)
		writeJSON(w, commandResponse{OK: placed, Reason: reason})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleBuildingDelete removes a building by ID: DELETE /api/v1/buildings/:id.
func (s *Server) handleBuildingDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/buildings/")
	if id == "" {
		http.Error(w, "missing building id", http.StatusBadRequest)
		return
	}
	removed := s.Game.RemoveBuilding(id)
	resp := commandResponse{OK: removed}
	if !removed {
		resp.Reason = "building not found or protected"
	}
	writeJSON(w, resp)
}

// handlePlacement sets or clears the pending placement selection.
func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if !s.Game.SetPlacementMode(game.BuildingType(req.Type)) {
		http.Error(w, "unknown building type", http.StatusBadRequest)
		return
	}
	writeJSON(w, commandResponse{OK: true})
}

// handleChronicle returns the in-memory chronicle, and the persisted history
// when a database is attached and ?persisted=1 is set.
func (s *Server) handleChronicle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("persisted") != "" && s.DB != nil {
		entries, err := s.DB.Entries(game.ChronicleCap)
		if err != nil {
			slog.Error("reading persisted chronicle", "error", err)
			http.Error(w, "database error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, entries)
		return
	}
	writeJSON(w, s.Game.Chronicle())
}

// handleEvents returns the pending event (if any) and resolved history.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"pending": s.Game.PendingEvent(),
		"history": s.Game.EventHistory(),
	})
}

// handleMilitary returns current strength, defense, and rival status.
func (s *Server) handleMilitary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"military": s.Game.CalculateMilitary(),
		"rival":    s.Game.Rival(),
		"combat":   s.Game.Combat(),
	})
}

// handleEra returns the current era and what the next advance requires.
func (s *Server) handleEra(w http.ResponseWriter, r *http.Request) {
	era := s.Game.Era()
	resp := map[string]any{
		"era":        era,
		"canAdvance": s.Game.CanAdvanceEra(),
	}
	if req, ok := game.NextEraRequirements(era); ok {
		resp["nextRequirements"] = req
	}
	writeJSON(w, resp)
}

func (s *Server) handleEraAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	advanced := s.Game.AdvanceEra()
	resp := commandResponse{OK: advanced}
	if !advanced {
		resp.Reason = "requirements not met"
	} else {
		resp.Era = s.Game.Era().String()
	}
	writeJSON(w, resp)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		paused := s.Game.TogglePause()
		slog.Info("pause toggled", "paused", paused)
	}
	writeJSON(w, map[string]bool{"paused": s.Game.IsPaused()})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed int `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if !s.Game.SetGameSpeed(req.Speed) {
			http.Error(w, "speed must be 1, 2, or 4", http.StatusBadRequest)
			return
		}
		slog.Info("speed changed", "speed", req.Speed)
	}
	writeJSON(w, map[string]int{"speed": s.Game.Speed()})
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	result := s.Game.Attack()
	if result == nil {
		writeJSON(w, commandResponse{OK: false, Reason: "attack unavailable"})
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleDefend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ok := s.Game.Defend()
	resp := commandResponse{OK: ok}
	if !ok {
		resp.Reason = "defend unavailable"
	}
	writeJSON(w, resp)
}

func (s *Server) handleEventResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ChoiceID string `json:"choiceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	resolved := s.Game.ResolveEvent(req.ChoiceID)
	resp := commandResponse{OK: resolved}
	if !resolved {
		resp.Reason = "no pending event or unknown choice"
	}
	writeJSON(w, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Game.ResetGame()
	slog.Info("game reset", "civilization", s.Game.CivilizationName())
	writeJSON(w, commandResponse{OK: true})
}

// terrainSummary flattens tile-type counts to wire names.
func terrainSummary(m *world.Map) map[string]int {
	out := make(map[string]int)
	for t, c := range world.TerrainCounts(m) {
		out[world.TileName(t)] = c
	}
	return out
}

type commandResponse struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	Era    string `json:"era,omitempty"`
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
