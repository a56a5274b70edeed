// Package server exposes the review pipeline over HTTP.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"

	"github.com/avandres/prreview/internal/types"
)

//go:embed static
var staticFS embed.FS

// Reviewer runs one review request end to end.
type Reviewer interface {
	Review(ctx context.Context, req types.ReviewRequest) (types.Report, error)
}

type Server struct {
	reviewer Reviewer
	addr     string
}

func New(reviewer Reviewer, addr string) *Server {
	return &Server{reviewer: reviewer, addr: addr}
}

// Handler builds the route table. Exposed separately from Start for
// tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /review", s.handleReview)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	return mux
}

func (s *Server) Start() error {
	log.Printf("review service listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req types.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	report, err := s.reviewer.Review(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		log.Printf("review %s/%s#%d failed: %v", req.RepoOwner, req.RepoName, req.PRNumber, err)
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// statusFor maps the caller-visible error kinds onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case types.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, types.ErrorResponse{Error: message})
}
