package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/user/mina-service/internal/delivery/http/request"
	"github.com/user/mina-service/internal/delivery/http/response"
	"github.com/user/mina-service/internal/usecase"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	searcher     usecase.Searcher
	log          *zap.Logger
	rulesVersion string
	providers    []string
}

func NewHandler(searcher usecase.Searcher, log *zap.Logger, rulesVersion string, providers []string) *Handler {
	if providers == nil {
		providers = []string{}
	}
	return &Handler{
		searcher:     searcher,
		log:          log,
		rulesVersion: rulesVersion,
		providers:    providers,
	}
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.HealthResponse{
		Status:       "ok",
		RulesVersion: h.rulesVersion,
		Providers:    h.providers,
	})
}

// HandleSearchQuery serves GET /api/search with parameters in the query string.
func (h *Handler) HandleSearchQuery(w http.ResponseWriter, r *http.Request) {
	req, err := request.FromQuery(r.URL.Query())
	if err != nil {
		h.writeJSONError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	h.search(w, r, req)
}

// HandleSearchBody serves POST /api/search with a JSON body.
func (h *Handler) HandleSearchBody(w http.ResponseWriter, r *http.Request) {
	var req request.SearchRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.search(w, r, req)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, req request.SearchRequest) {
	result, err := h.searcher.Search(r.Context(), req.Params())
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleExtract serves POST /api/extract: extraction over supplied hits, no upstream calls.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	var req request.ExtractRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.searcher.Extract(req.Params(), req.SearchHits())
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleInsights serves GET /api/insights, the combined trend, startup and funding feed.
func (h *Handler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	req, err := request.FromQuery(r.URL.Query())
	if err != nil {
		h.writeJSONError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.searcher.Insights(r.Context(), req.Offset, req.PageSize)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		h.writeJSONError(w, r, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidMode), errors.Is(err, usecase.ErrInvalidOffset):
		h.writeJSONError(w, r, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error("search request failed", zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
		h.writeJSONError(w, r, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, r *http.Request, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
