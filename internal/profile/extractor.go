package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/gemini"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/llmjson"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/trace"
)

// Generator is the model call the extractor depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg gemini.GenerateConfig) (string, error)
}

// Extractor turns free-text user inputs into a structured Profile.
type Extractor struct {
	gen Generator
}

// NewExtractor creates an Extractor using the given generator.
func NewExtractor(gen Generator) *Extractor {
	return &Extractor{gen: gen}
}

// Extract returns the structured profile for the given inputs. On any
// failure (model error, malformed JSON) it logs the raw output and returns a
// zero-value Profile — the pipeline must not abort on extraction failures.
func (e *Extractor) Extract(ctx context.Context, resume, interviewSummary, goals string) Profile {
	p, _ := e.ExtractTrace(ctx, resume, interviewSummary, goals)
	return p
}

// ExtractTrace is Extract plus the exact prompt and raw model response for
// auditing.
func (e *Extractor) ExtractTrace(ctx context.Context, resume, interviewSummary, goals string) (Profile, trace.Trace) {
	tr := trace.Trace{Stage: trace.StageProfile, Prompt: BuildPrompt(resume, interviewSummary, goals)}
	start := time.Now()
	defer func() { tr.Duration = time.Since(start) }()

	raw, err := e.gen.Generate(ctx, tr.Prompt, gemini.GenerateConfig{})
	if err != nil {
		slog.Warn("profile extraction failed", "error", err)
		tr.Err = err
		return Profile{}, tr
	}
	tr.Response = raw

	var p Profile
	if err := llmjson.Decode(raw, &p); err != nil {
		slog.Warn("failed to parse profile from model response", "error", err, "response", raw)
		tr.Err = err
		return Profile{}, tr
	}

	if p.LearningPreference != "" && !p.LearningPreference.Valid() {
		slog.Warn("model returned learning preference outside the enumerated set",
			"learning_preference", string(p.LearningPreference))
	}

	return p, tr
}
