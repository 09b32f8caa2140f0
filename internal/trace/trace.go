// Package trace defines the per-stage execution record shared by all
// pipeline stages. A Trace captures exactly what was sent to the model and
// what came back, so model behavior can be audited after the fact.
package trace

import "time"

// Stage names used across the pipeline.
const (
	StageProfile    = "profile_extraction"
	StagePersona    = "persona_classification"
	StageTopics     = "topic_identification"
	StageStructure  = "roadmap_structure"
	StageActivities = "roadmap_activities"
)

// Trace records a single prompt/response exchange with the model.
// Err is non-nil when generation failed or the response did not decode;
// the owning stage still returns its zero default in that case.
type Trace struct {
	Stage    string
	Prompt   string
	Response string
	Err      error
	Duration time.Duration
}

// Failed reports whether the stage degraded to its empty default.
func (t Trace) Failed() bool { return t.Err != nil }
