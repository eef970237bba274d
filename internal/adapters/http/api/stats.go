// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// StatsProvider supplies the service-level counters shown on /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler exposes service statistics for quick operational checks:
// lifecycle state, record count, and the latest round seen.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}
