// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/raceboard/internal/domain/model"
	"github.com/okian/raceboard/internal/domain/types"
)

// SubmissionDependencies defines the interface for submission operations.
type SubmissionDependencies interface {
	Submit(ctx context.Context, ans model.AnswerSet) (types.Receipt, error)
	Submissions(ctx context.Context, round int) ([]types.Submission, int, error)
}

// SubmissionsHandler handles submission requests.
type SubmissionsHandler struct {
	deps SubmissionDependencies
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(deps SubmissionDependencies) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// submitRequest mirrors the JSON schema for POST /submissions. Answers are
// keyed by section id; the value shape follows the section kind.
type submitRequest struct {
	Team     string            `json:"team"`
	Round    int               `json:"round"`
	Scenario string            `json:"scenario"`
	Single   map[string]*int   `json:"single"`
	Multi    map[string][]int  `json:"multi"`
	Binary   map[string][]bool `json:"binary"`
}

func (r submitRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Team) == "":
		return errors.New("missing team")
	case strings.TrimSpace(r.Scenario) == "":
		return errors.New("missing scenario")
	case r.Round < 1:
		return errors.New("round must be a positive integer")
	}
	return nil
}

func (r submitRequest) toAnswerSet() model.AnswerSet {
	ans := model.AnswerSet{
		Team:     r.Team,
		Round:    r.Round,
		Scenario: r.Scenario,
		Single:   make(map[string]int, len(r.Single)),
		Multi:    r.Multi,
		Binary:   r.Binary,
	}
	for id, idx := range r.Single {
		if idx == nil {
			ans.Single[id] = model.NoSelection
			continue
		}
		ans.Single[id] = *idx
	}
	return ans
}

// HandleSubmissions dispatches POST (submit) and GET (round history) on
// /submissions.
func (h *SubmissionsHandler) HandleSubmissions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SubmissionsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_submission"
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	receipt, err := h.deps.Submit(r.Context(), req.toAnswerSet())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *SubmissionsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_submissions"
	round, err := roundParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	subs, round, err := h.deps.Submissions(r.Context(), round)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if subs == nil {
		subs = []types.Submission{}
	}
	writeJSON(w, http.StatusOK, submissionList{Round: round, Submissions: subs})
}

type submissionList struct {
	Round       int                `json:"round"`
	Submissions []types.Submission `json:"submissions"`
}
