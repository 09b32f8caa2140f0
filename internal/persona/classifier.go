package persona

import (
	"context"
	"log/slog"
	"time"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/gemini"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/llmjson"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/trace"
)

// Generator is the model call the classifier depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg gemini.GenerateConfig) (string, error)
}

// Classifier assigns one of the six personas to an extracted profile.
type Classifier struct {
	gen Generator
}

// NewClassifier creates a Classifier using the given generator.
func NewClassifier(gen Generator) *Classifier {
	return &Classifier{gen: gen}
}

// Classify returns the persona classification for the profile. On any
// failure it logs the raw output and returns an empty Result.
func (c *Classifier) Classify(ctx context.Context, p profile.Profile) Result {
	r, _ := c.ClassifyTrace(ctx, p)
	return r
}

// ClassifyTrace is Classify plus the exact prompt and raw model response.
//
// A category outside the enumerated set is kept verbatim but logged: the
// closed list in the prompt makes this rare, and downstream rendering treats
// the persona as display text.
func (c *Classifier) ClassifyTrace(ctx context.Context, p profile.Profile) (Result, trace.Trace) {
	tr := trace.Trace{Stage: trace.StagePersona, Prompt: BuildPrompt(p)}
	start := time.Now()
	defer func() { tr.Duration = time.Since(start) }()

	raw, err := c.gen.Generate(ctx, tr.Prompt, gemini.GenerateConfig{})
	if err != nil {
		slog.Warn("persona classification failed", "error", err)
		tr.Err = err
		return Result{}, tr
	}
	tr.Response = raw

	var result Result
	if err := llmjson.Decode(raw, &result); err != nil {
		slog.Warn("failed to parse persona from model response", "error", err, "response", raw)
		tr.Err = err
		return Result{}, tr
	}

	if result.Persona != "" && !result.Persona.Valid() {
		slog.Warn("model returned persona outside the enumerated categories",
			"persona", string(result.Persona))
	}

	return result, tr
}
