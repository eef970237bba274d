// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/raceboard/internal/domain/types"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, round int) ([]types.Row, int, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps LeaderboardDependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles GET /leaderboard?round=N requests. When the
// round parameter is omitted the latest round with submissions is shown.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	round, err := roundParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rows, round, err := h.deps.Leaderboard(r.Context(), round)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if rows == nil {
		rows = []types.Row{}
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Round: round, Rows: rows})
}

type leaderboardResponse struct {
	Round int         `json:"round"`
	Rows  []types.Row `json:"rows"`
}

// roundParam parses the optional round query parameter; zero means "latest".
func roundParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("round")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("round must be a positive integer")
	}
	return n, nil
}
