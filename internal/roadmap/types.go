// Package roadmap defines the final roadmap document produced by the
// planning pipeline.
package roadmap

// Valid roadmap durations in days. Model output outside this set is
// normalized to DefaultDurationDays.
const (
	DurationShort  = 21
	DurationMedium = 30
	DurationLong   = 45

	DefaultDurationDays = DurationMedium
)

// ValidDuration reports whether d is one of the enumerated durations.
func ValidDuration(d int) bool {
	return d == DurationShort || d == DurationMedium || d == DurationLong
}

// TopicPlan is one topic within a level, with its learning activity and
// time estimate.
type TopicPlan struct {
	Topic          string `json:"topic"`
	Activity       string `json:"activity"`
	EstimatedHours int    `json:"estimated_hours"`
	Justification  string `json:"justification"`
}

// Level is one stage of the roadmap (e.g. Foundations, Hands-on, Application).
type Level struct {
	Level          int         `json:"level"`
	Title          string      `json:"title"`
	EstimatedHours int         `json:"estimated_hours"`
	Topics         []TopicPlan `json:"topics"`
}

// ProfileSummary carries the originating user data alongside the roadmap.
type ProfileSummary struct {
	Persona                 string   `json:"persona"`
	Domain                  string   `json:"domain"`
	Goals                   []string `json:"goals"`
	WeeklyAvailabilityHours int      `json:"weekly_availability_hours"`
}

// Document is the assembled roadmap. Every run produces one Document,
// however degraded: a run with all model calls failing yields the default
// duration, zero hours and no levels.
type Document struct {
	Title               string         `json:"title"`
	DurationDays        int            `json:"duration_days"`
	TotalEstimatedHours int            `json:"total_estimated_hours"`
	Levels              []Level        `json:"levels"`
	Profile             ProfileSummary `json:"user_profile_summary"`
}
