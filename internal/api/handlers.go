package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/prompts"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/workflows"
)

// GenerateRequest is the body of POST /api/v1/generate and /api/v1/generations.
type GenerateRequest struct {
	SessionID string             `json:"session_id,omitempty"`
	Prompt    string             `json:"prompt"`
	Inputs    []domain.InputData `json:"inputs"`
}

// GenerateResponse returns every rendered block plus one entry per failed input.
type GenerateResponse struct {
	Blocks []domain.UIBlock `json:"blocks"`
	Errors []InputError     `json:"errors,omitempty"`
}

// InputError describes one input that produced no block.
type InputError struct {
	InputID string                   `json:"id"`
	Phase   agent.Phase              `json:"phase"`
	Code    string                   `json:"code,omitempty"`
	Message string                   `json:"message"`
	Errors  []domain.ValidationError `json:"validation_errors,omitempty"`
}

// ComponentInfo describes one component the agent may choose.
type ComponentInfo struct {
	Name          string                          `json:"name"`
	Component     domain.Component                `json:"component"`
	ComponentType string                          `json:"component_type,omitempty"`
	Description   string                          `json:"description"`
	Configured    *config.ComponentConfiguration `json:"configuration,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":           "ok",
		"component_system": s.gen.ComponentSystem(),
	})
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, componentInfos(s.gen.Components(r.URL.Query().Get("data_type"))))
}

func componentInfos(choices []prompts.Choice) []ComponentInfo {
	out := make([]ComponentInfo, len(choices))
	for i, c := range choices {
		out[i] = ComponentInfo{
			Name:          c.Name,
			Component:     c.Component,
			ComponentType: c.ComponentType,
			Description:   c.Metadata.Description,
			Configured:    c.Configured,
		}
	}
	return out
}

func (s *Server) decodeGenerate(w http.ResponseWriter, r *http.Request) (GenerateRequest, bool) {
	var req GenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeCoded(w, err)
		return req, false
	}
	if len(req.Inputs) == 0 {
		writeCoded(w, domain.Errorf(domain.CodeNoInputData, "at least one input is required"))
		return req, false
	}
	for i := range req.Inputs {
		if req.Inputs[i].ID == "" {
			req.Inputs[i].ID = uuid.NewString()
		}
	}
	return req, true
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerate(w, r)
	if !ok {
		return
	}

	resp := GenerateResponse{Blocks: []domain.UIBlock{}}
	for _, res := range s.gen.GenerateAll(r.Context(), req.Prompt, req.Inputs) {
		if res.Block != nil && res.Err == nil {
			resp.Blocks = append(resp.Blocks, *res.Block)
			continue
		}
		ie := InputError{InputID: res.InputID, Phase: res.Phase, Errors: res.Errors}
		if res.Err != nil {
			ie.Code = string(domain.CodeOf(res.Err))
			ie.Message = res.Err.Error()
		}
		resp.Errors = append(resp.Errors, ie)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartGeneration(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerate(w, r)
	if !ok {
		return
	}
	summary, err := s.querier.StartGeneration(r.Context(), workflows.GenerateInput{
		SessionID: req.SessionID,
		Prompt:    req.Prompt,
		Inputs:    req.Inputs,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, summary)
}

func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	opts := querier.ListOptions{StatusFilter: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "page_size must be a non-negative integer")
			return
		}
		opts.PageSize = n
	}

	list, err := s.querier.ListWorkflows(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []querier.WorkflowSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "workflow id required")
		return
	}

	state, err := s.querier.GetGenerationState(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}
