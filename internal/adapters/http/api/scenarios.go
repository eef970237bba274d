// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/raceboard/internal/domain/types"
)

// ScenarioDependencies defines the interface for scenario listings.
type ScenarioDependencies interface {
	Scenarios(ctx context.Context) []types.ScenarioSummary
}

// ScenariosHandler handles scenario listing requests.
type ScenariosHandler struct {
	deps ScenarioDependencies
}

// NewScenariosHandler creates a new scenarios handler.
func NewScenariosHandler(deps ScenarioDependencies) *ScenariosHandler {
	return &ScenariosHandler{deps: deps}
}

// HandleGetScenarios handles GET /scenarios requests. The listing carries
// everything a form needs to render sections; answer keys stay server-side.
func (h *ScenariosHandler) HandleGetScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Scenarios(r.Context()))
}
