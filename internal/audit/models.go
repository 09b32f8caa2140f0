package audit

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("not found")

// Run is one recorded pipeline execution.
type Run struct {
	ID                  string
	CreatedAt           time.Time
	Persona             string
	DurationDays        int
	TotalEstimatedHours int
	FailedStages        int
	RoadmapJSON         string
}

// StageTrace is one persisted prompt/response exchange within a run.
// Seq preserves pipeline order.
type StageTrace struct {
	ID         string
	RunID      string
	Seq        int
	Stage      string
	Prompt     string
	Response   string
	Error      string
	DurationMs int64
}
