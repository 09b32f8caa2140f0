// Package api exposes the roadmap pipeline over a localhost HTTP surface
// and over MCP for editor and agent integrations.
package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/audit"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/pipeline"
)

const maxRequestBodySize = 10 << 20 // 10MB; resumes arrive as extracted full text

// Roadmapper abstracts the pipeline agent for the API layer.
type Roadmapper interface {
	Generate(ctx context.Context, in pipeline.Input) pipeline.Result
}

// AppDeps holds dependencies for the HTTP handler.
type AppDeps struct {
	Agent Roadmapper
	Store *audit.Store // optional; if nil, the runs endpoints return 404
	Token string       // optional; if empty, /v1 routes are unauthenticated
}

type RoadmapRequest struct {
	Resume           string `json:"resume"`
	InterviewSummary string `json:"interview_summary"`
	Goals            string `json:"goals"`
	GeneratePDF      bool   `json:"generate_pdf"`
}

type RoadmapResponse struct {
	RunID        string          `json:"run_id"`
	Persona      string          `json:"persona"`
	Roadmap      json.RawMessage `json:"roadmap"`
	Table        string          `json:"table"`
	PDFBase64    string          `json:"pdf_base64,omitempty"`
	FailedStages int             `json:"failed_stages"`
	DurationMs   int64           `json:"duration_ms"`
}

// NewAppHandler returns the HTTP handler for the roadmap service.
func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Route("/v1", func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Post("/roadmap", handleRoadmap(deps))
		r.Get("/runs", handleListRuns(deps))
		r.Get("/runs/{id}", handleGetRun(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleRoadmap(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req RoadmapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Resume == "" && req.InterviewSummary == "" && req.Goals == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "at least one of resume, interview_summary or goals is required")
			return
		}

		result := deps.Agent.Generate(r.Context(), pipeline.Input{
			Resume:           req.Resume,
			InterviewSummary: req.InterviewSummary,
			Goals:            req.Goals,
			PDF:              req.GeneratePDF,
		})

		docJSON, err := json.Marshal(result.Document)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to marshal roadmap: %v", err)
			return
		}

		resp := RoadmapResponse{
			RunID:        result.Metadata.RunID,
			Persona:      string(result.Persona.Persona),
			Roadmap:      docJSON,
			Table:        result.Table,
			FailedStages: result.Metadata.FailedStages,
			DurationMs:   result.Metadata.Duration.Milliseconds(),
		}
		if result.PDF != nil {
			resp.PDFBase64 = base64.StdEncoding.EncodeToString(result.PDF)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func handleListRuns(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Store == nil {
			httpError(w, http.StatusNotFound, "not_found", "audit store not configured")
			return
		}

		limit := parseIntParam(r, "limit", 20, 100)
		runs, err := deps.Store.ListRuns(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list runs: %v", err)
			return
		}
		if runs == nil {
			runs = []audit.Run{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(runs)
	}
}

func handleGetRun(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Store == nil {
			httpError(w, http.StatusNotFound, "not_found", "audit store not configured")
			return
		}

		id := chi.URLParam(r, "id")
		run, err := deps.Store.GetRun(id)
		if errors.Is(err, audit.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "run not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get run: %v", err)
			return
		}

		traces, err := deps.Store.GetTraces(id)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get traces: %v", err)
			return
		}
		if traces == nil {
			traces = []audit.StageTrace{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"run":    run,
			"traces": traces,
		})
	}
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
