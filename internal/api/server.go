// Package api serves the generation pipeline over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agui"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/prompts"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// Generator runs the pipeline in-process.
type Generator interface {
	GenerateAll(ctx context.Context, prompt string, inputs []domain.InputData) []agent.Result
	Components(dataType string) []prompts.Choice
	ComponentSystem() string
}

// Server is the HTTP API server.
type Server struct {
	gen     Generator
	querier querier.WorkflowQuerier
	mux     *http.ServeMux
	handler http.Handler
}

// New creates a Server. A nil querier disables the workflow endpoints, which
// then answer 503.
func New(gen Generator, q querier.WorkflowQuerier, corsOrigins []string) *Server {
	s := &Server{gen: gen, querier: q, mux: http.NewServeMux()}
	s.routes()
	s.handler = requestID(logging(cors(corsOrigins, s.mux)))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/components", s.handleComponents)
	s.mux.HandleFunc("POST /api/v1/generate", s.handleGenerate)
	s.mux.HandleFunc("POST /api/v1/generations", s.withQuerier(s.handleStartGeneration))
	s.mux.HandleFunc("GET /api/v1/generations", s.withQuerier(s.handleListGenerations))
	s.mux.HandleFunc("GET /api/v1/generations/{id}", s.withQuerier(s.handleGetGeneration))
	if s.querier != nil {
		s.mux.HandleFunc("GET /api/v1/generations/{id}/stream", agui.StreamHandler(s.querier, agui.DefaultConfig()))
	} else {
		s.mux.HandleFunc("GET /api/v1/generations/{id}/stream", s.withQuerier(nil))
	}
}

func (s *Server) withQuerier(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.querier == nil {
			writeError(w, http.StatusServiceUnavailable, "workflow backend not configured")
			return
		}
		h(w, r)
	}
}
