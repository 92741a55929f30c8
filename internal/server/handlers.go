package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jobgyani/job-alerts/internal/entities"
	"github.com/jobgyani/job-alerts/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const digestSecretHeader = "X-Digest-Secret"

// SearchService and DigestService are the slices of the service layer the
// handlers need. Both are satisfied by the concrete services and by test
// fakes.
type SearchService interface {
	Search(ctx context.Context, rawQuery string, page, pageCount int, userID string) ([]entities.JobRecord, services.Source, error)
}

type DigestService interface {
	Run(ctx context.Context, secret string) (services.DigestSummary, error)
}

type handlers struct {
	searcher SearchService
	digest   DigestService
	validate *validator.Validate
}

func newHandlers(search SearchService, digest DigestService) *handlers {
	return &handlers{
		searcher: search,
		digest:   digest,
		validate: validator.New(),
	}
}

type searchRequest struct {
	Query     string `json:"query" validate:"required"`
	UserID    string `json:"userId"`
	Page      int    `json:"page"`
	PageCount int    `json:"pageCount"`
}

type searchResponse struct {
	Success bool                 `json:"success"`
	Jobs    []entities.JobRecord `json:"jobs"`
	Cached  bool                 `json:"cached"`
	Source  string               `json:"source"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	jobs, source, err := h.searcher.Search(r.Context(), req.Query, req.Page, req.PageCount, req.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to fetch jobs"})
		return
	}

	if jobs == nil {
		jobs = []entities.JobRecord{}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success: true,
		Jobs:    jobs,
		Cached:  source != services.SourceOrigin,
		Source:  string(source),
	})
}

func (h *handlers) runDigest(w http.ResponseWriter, r *http.Request) {

	summary, err := h.digest.Run(r.Context(), r.Header.Get(digestSecretHeader))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "digest run failed"})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
