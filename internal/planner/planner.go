package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/gemini"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/llmjson"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/roadmap"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/trace"
)

// Generator is the model call the planner depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg gemini.GenerateConfig) (string, error)
}

// Planner runs the three roadmap stages and assembles the final document.
type Planner struct {
	gen Generator
}

// New creates a Planner using the given generator.
func New(gen Generator) *Planner {
	return &Planner{gen: gen}
}

// run executes one prompt/parse stage: generate, strip fences, decode into
// out. On failure out is left untouched (callers pass its zero default) and
// the returned trace carries the error and raw output.
func (pl *Planner) run(ctx context.Context, stage, prompt string, out any) trace.Trace {
	tr := trace.Trace{Stage: stage, Prompt: prompt}
	start := time.Now()
	defer func() { tr.Duration = time.Since(start) }()

	raw, err := pl.gen.Generate(ctx, prompt, gemini.GenerateConfig{})
	if err != nil {
		slog.Warn("planner stage failed", "stage", stage, "error", err)
		tr.Err = err
		return tr
	}
	tr.Response = raw

	if err := llmjson.Decode(raw, out); err != nil {
		slog.Warn("failed to parse planner stage response", "stage", stage, "error", err, "response", raw)
		tr.Err = err
	}
	return tr
}

// IdentifyTopics returns the most relevant topics for the profile and
// persona. Empty slice on failure.
func (pl *Planner) IdentifyTopics(ctx context.Context, p profile.Profile, persona string) []Topic {
	topics, _ := pl.IdentifyTopicsTrace(ctx, p, persona)
	return topics
}

// IdentifyTopicsTrace is IdentifyTopics plus the stage trace.
func (pl *Planner) IdentifyTopicsTrace(ctx context.Context, p profile.Profile, persona string) ([]Topic, trace.Trace) {
	var topics []Topic
	tr := pl.run(ctx, trace.StageTopics, BuildTopicsPrompt(p, persona), &topics)
	if tr.Err != nil {
		return nil, tr
	}
	return topics, tr
}

// PlanStructureTrace proposes duration and level structure for the topics.
// Zero-value Structure on failure.
func (pl *Planner) PlanStructureTrace(ctx context.Context, topics []Topic) (Structure, trace.Trace) {
	var s Structure
	tr := pl.run(ctx, trace.StageStructure, BuildStructurePrompt(topics), &s)
	if tr.Err != nil {
		return Structure{}, tr
	}
	return s, tr
}

// PlanActivitiesTrace details activities and hour estimates for each topic.
// Zero-value Activities on failure.
func (pl *Planner) PlanActivitiesTrace(ctx context.Context, p profile.Profile, persona string, s Structure) (Activities, trace.Trace) {
	var a Activities
	tr := pl.run(ctx, trace.StageActivities, BuildActivitiesPrompt(p, persona, s), &a)
	if tr.Err != nil {
		return Activities{}, tr
	}
	return a, tr
}

// PlanRoadmap runs Think → Plan → Rethink and assembles the document.
// When topics is non-nil the Think stage is skipped and the provided topics
// are used instead (this is what allows topic identification to run
// concurrently with persona classification). The returned traces cover the
// stages actually executed.
func (pl *Planner) PlanRoadmap(ctx context.Context, p profile.Profile, persona string, topics []Topic) (roadmap.Document, []trace.Trace) {
	var traces []trace.Trace

	if topics == nil {
		var tr trace.Trace
		topics, tr = pl.IdentifyTopicsTrace(ctx, p, persona)
		traces = append(traces, tr)
	}

	structure, tr := pl.PlanStructureTrace(ctx, topics)
	traces = append(traces, tr)

	activities, tr := pl.PlanActivitiesTrace(ctx, p, persona, structure)
	traces = append(traces, tr)

	return Assemble(p, persona, structure, activities), traces
}

// Assemble builds the final document from the stage outputs, normalizing
// the duration to the enumerated set.
func Assemble(p profile.Profile, persona string, s Structure, a Activities) roadmap.Document {
	duration := s.DurationDays
	if !roadmap.ValidDuration(duration) {
		if duration != 0 {
			slog.Warn("model proposed duration outside the enumerated set, using default",
				"duration_days", duration, "default", roadmap.DefaultDurationDays)
		}
		duration = roadmap.DefaultDurationDays
	}

	return roadmap.Document{
		Title:               fmt.Sprintf("Personalized GenAI Roadmap for %s", persona),
		DurationDays:        duration,
		TotalEstimatedHours: a.TotalEstimatedHours,
		Levels:              a.Levels,
		Profile: roadmap.ProfileSummary{
			Persona:                 persona,
			Domain:                  p.Domain,
			Goals:                   p.Goals,
			WeeklyAvailabilityHours: p.WeeklyAvailabilityHours,
		},
	}
}
