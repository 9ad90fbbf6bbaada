// Package api exposes the HTTP interface for the analyzer service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MataNBhohadanA/text-analyzer/internal/analysis"
)

// AnalysisService is the slice of the analysis service the API needs.
type AnalysisService interface {
	Process(ctx context.Context, req analysis.Request) (analysis.Result, error)
}

// Server wires HTTP handlers to the analysis service.
type Server struct {
	router  chi.Router
	service AnalysisService
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(service AnalysisService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service: service,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(5 * time.Minute))

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyses", s.submitAnalysis)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analysisRequest struct {
	Action string `json:"action"`
	URL    string `json:"url"`
}

type analysisResponse struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	URL        string `json:"url"`
	Sentences  int    `json:"sentences"`
	Output     string `json:"output"`
	FetchMs    int64  `json:"fetch_ms"`
	AnnotateMs int64  `json:"annotate_ms"`
}

func (s *Server) submitAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	// Reject unknown actions up front; the API has no stderr to report
	// them on after the fact.
	if _, err := analysis.ParseAction(req.Action); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Process(r.Context(), analysis.Request{
		Action: req.Action,
		URL:    req.URL,
	})
	if err != nil {
		s.logger.Error("analysis failed", zap.String("url", req.URL), zap.Error(err))
		var fe *analysis.FetchError
		switch {
		case errors.As(err, &fe):
			writeError(w, http.StatusBadGateway, fe.Error())
		case errors.Is(err, analysis.ErrMissingAnnotation):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		ID:         result.ID,
		Action:     string(result.Action),
		URL:        result.URL,
		Sentences:  result.Sentences,
		Output:     result.Output,
		FetchMs:    result.FetchTime.Milliseconds(),
		AnnotateMs: result.Annotate.Milliseconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
