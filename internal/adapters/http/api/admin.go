// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// AdminDependencies defines the interface for administrative operations.
type AdminDependencies interface {
	Reset(ctx context.Context, code string) error
}

// AdminHandler handles the instructor-facing reset endpoint.
type AdminHandler struct {
	deps AdminDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

type resetRequest struct {
	Code string `json:"code"`
}

type resetResponse struct {
	Status string `json:"status"`
}

// HandleReset handles POST /admin/reset requests. The code is compared
// exactly as sent; the only normalization is none at all.
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin_reset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.Reset(r.Context(), req.Code); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resetResponse{Status: "cleared"})
}
