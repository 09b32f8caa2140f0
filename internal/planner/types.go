// Package planner generates the roadmap through three sequential model
// stages: identify topics (Think), structure levels and duration (Plan),
// then detail activities and hours (Rethink). Each stage consumes the prior
// stage's parsed output.
package planner

import "github.com/Harsha2318/GenAI-Roadmap-Agent/internal/roadmap"

// Topic is a candidate roadmap topic with the model's reasoning for it.
type Topic struct {
	Topic         string `json:"topic"`
	Justification string `json:"justification"`
}

// StructureLevel assigns topics to one roadmap level, before activities and
// hours are known.
type StructureLevel struct {
	Level         int      `json:"level"`
	Title         string   `json:"title"`
	Topics        []string `json:"topics"`
	Justification string   `json:"justification"`
}

// Structure is the intermediate result of the Plan stage.
type Structure struct {
	DurationDays           int              `json:"duration_days"`
	Levels                 []StructureLevel `json:"levels"`
	StructureJustification string           `json:"structure_justification"`
}

// IsZero reports whether the structure stage produced nothing.
func (s Structure) IsZero() bool {
	return s.DurationDays == 0 && len(s.Levels) == 0 && s.StructureJustification == ""
}

// Activities is the result of the final stage: fully detailed levels plus
// the overall time estimate.
type Activities struct {
	Levels              []roadmap.Level `json:"levels"`
	TotalEstimatedHours int             `json:"total_estimated_hours"`
}
