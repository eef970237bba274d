// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/raceboard/internal/adapters/repository"
	app "github.com/okian/raceboard/internal/app"
	"github.com/okian/raceboard/internal/domain/model"
	"github.com/okian/raceboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Submit grades one answer set and appends it to the ledger.
	Submit(ctx context.Context, ans model.AnswerSet) (types.Receipt, error)

	// Read operations expose round standings and history.
	Leaderboard(ctx context.Context, round int) ([]types.Row, int, error)
	Submissions(ctx context.Context, round int) ([]types.Submission, int, error)
	Scenarios(ctx context.Context) []types.ScenarioSummary

	// Reset clears the whole ledger behind the shared admin code.
	Reset(ctx context.Context, code string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scenariosHandler   *ScenariosHandler
	submissionsHandler *SubmissionsHandler
	leaderboardHandler *LeaderboardHandler
	adminHandler       *AdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		scenariosHandler:   NewScenariosHandler(deps),
		submissionsHandler: NewSubmissionsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		adminHandler:       NewAdminHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/scenarios", MetricsMiddleware(s.scenariosHandler.HandleGetScenarios, "scenarios"))
	mux.HandleFunc("/submissions", MetricsMiddleware(s.submissionsHandler.HandleSubmissions, "submissions"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/admin/reset", MetricsMiddleware(s.adminHandler.HandleReset, "admin_reset"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps service error kinds onto the HTTP surface.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, app.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation", err)
	case errors.Is(err, app.ErrUnknownScenario):
		writeError(w, http.StatusNotFound, "unknown_scenario", err)
	case errors.Is(err, app.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, repository.ErrBusy):
		// Recoverable: the caller should simply try again.
		writeError(w, http.StatusServiceUnavailable, "busy", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
