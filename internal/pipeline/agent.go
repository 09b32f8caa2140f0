// Package pipeline orchestrates the full roadmap generation run:
// profile extraction → persona classification → roadmap planning → rendering.
//
// Every stage degrades to its empty default on failure, so a run always
// completes and always yields a document, however empty. Callers inspect
// Metadata.FailedStages (or the per-stage traces) to tell a degraded run
// from a genuinely sparse one.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/audit"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/gemini"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/persona"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/planner"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/render"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/roadmap"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/trace"
)

// Generator is the single model dependency shared by all stages.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg gemini.GenerateConfig) (string, error)
}

// Input carries the three free-text inputs for one run.
type Input struct {
	Resume           string
	InterviewSummary string
	Goals            string
	PDF              bool // also render the document as PDF
}

// Metadata captures diagnostic information about a run.
type Metadata struct {
	RunID        string
	Duration     time.Duration
	FailedStages int
	Parallel     bool
}

// Result is everything one run produces.
type Result struct {
	Document roadmap.Document
	Table    string
	PDF      []byte // set only when requested and rendering succeeded
	Profile  profile.Profile
	Persona  persona.Result
	Traces   []trace.Trace
	Metadata Metadata
}

// Option configures an Agent.
type Option func(*Agent)

// WithAuditStore makes the agent persist each run and its stage traces.
func WithAuditStore(store *audit.Store) Option {
	return func(a *Agent) { a.store = store }
}

// WithParallel runs persona classification and topic identification
// concurrently after extraction; both depend only on the profile.
func WithParallel(parallel bool) Option {
	return func(a *Agent) { a.parallel = parallel }
}

// Agent wires the stages together over a single generator.
type Agent struct {
	extractor  *profile.Extractor
	classifier *persona.Classifier
	planner    *planner.Planner
	store      *audit.Store
	parallel   bool
}

// NewAgent creates an Agent over the given generator.
func NewAgent(gen Generator, opts ...Option) *Agent {
	a := &Agent{
		extractor:  profile.NewExtractor(gen),
		classifier: persona.NewClassifier(gen),
		planner:    planner.New(gen),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate runs the full pipeline. It never fails: stage errors are recorded
// in the traces and the result degrades toward empty values.
func (a *Agent) Generate(ctx context.Context, in Input) Result {
	start := time.Now()
	runID := uuid.New().String()

	prof, profileTrace := a.extractor.ExtractTrace(ctx, in.Resume, in.InterviewSummary, in.Goals)

	var (
		personaResult persona.Result
		personaTrace  trace.Trace
		topics        []planner.Topic
		planTraces    []trace.Trace
		doc           roadmap.Document
	)

	if a.parallel {
		var topicsTrace trace.Trace
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			personaResult, personaTrace = a.classifier.ClassifyTrace(gctx, prof)
			return nil
		})
		g.Go(func() error {
			topics, topicsTrace = a.planner.IdentifyTopicsTrace(gctx, prof, "")
			return nil
		})
		g.Wait()

		if topics == nil {
			// Keep planner semantics: nil means "identify again". The stage
			// already failed once, so substitute an empty list.
			topics = []planner.Topic{}
		}
		doc, planTraces = a.planner.PlanRoadmap(ctx, prof, string(personaResult.Persona), topics)
		planTraces = append([]trace.Trace{topicsTrace}, planTraces...)
	} else {
		personaResult, personaTrace = a.classifier.ClassifyTrace(ctx, prof)
		doc, planTraces = a.planner.PlanRoadmap(ctx, prof, string(personaResult.Persona), nil)
	}

	traces := make([]trace.Trace, 0, 2+len(planTraces))
	traces = append(traces, profileTrace, personaTrace)
	traces = append(traces, planTraces...)

	result := Result{
		Document: doc,
		Table:    render.Table(doc),
		Profile:  prof,
		Persona:  personaResult,
		Traces:   traces,
	}

	if in.PDF {
		pdf, err := render.PDF(doc)
		if err != nil {
			slog.Warn("pdf rendering failed, continuing without it", "error", err)
		} else {
			result.PDF = pdf
		}
	}

	failed := 0
	for _, tr := range traces {
		if tr.Failed() {
			failed++
		}
	}
	result.Metadata = Metadata{
		RunID:        runID,
		Duration:     time.Since(start),
		FailedStages: failed,
		Parallel:     a.parallel,
	}

	a.persist(result)

	slog.Debug("roadmap run complete",
		"run_id", runID,
		"duration_days", doc.DurationDays,
		"levels", len(doc.Levels),
		"failed_stages", failed,
	)

	return result
}

// persist saves the run to the audit store, if configured. Persistence
// failures are logged and otherwise ignored.
func (a *Agent) persist(result Result) {
	if a.store == nil {
		return
	}

	docJSON, err := json.Marshal(result.Document)
	if err != nil {
		slog.Warn("failed to marshal roadmap for audit", "error", err)
		docJSON = []byte("{}")
	}

	run := audit.Run{
		ID:                  result.Metadata.RunID,
		CreatedAt:           time.Now().UTC(),
		Persona:             string(result.Persona.Persona),
		DurationDays:        result.Document.DurationDays,
		TotalEstimatedHours: result.Document.TotalEstimatedHours,
		FailedStages:        result.Metadata.FailedStages,
		RoadmapJSON:         string(docJSON),
	}

	traces := make([]audit.StageTrace, len(result.Traces))
	for i, tr := range result.Traces {
		errText := ""
		if tr.Err != nil {
			errText = tr.Err.Error()
		}
		traces[i] = audit.StageTrace{
			ID:         uuid.New().String(),
			RunID:      run.ID,
			Seq:        i,
			Stage:      tr.Stage,
			Prompt:     tr.Prompt,
			Response:   tr.Response,
			Error:      errText,
			DurationMs: tr.Duration.Milliseconds(),
		}
	}

	if err := a.store.SaveRun(run, traces); err != nil {
		slog.Warn("failed to persist run to audit store", "run_id", run.ID, "error", err)
	}
}
