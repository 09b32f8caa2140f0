// Package profile extracts a structured user profile from free-text inputs
// (resume, interview summary, personal goals) using the model.
package profile

// LearningPreference is the user's preferred learning style. The same closed
// set feeds prompt construction and result validation.
type LearningPreference string

const (
	PreferenceProjectBased LearningPreference = "project-based"
	PreferenceVideoBased   LearningPreference = "video-based"
	PreferenceReading      LearningPreference = "reading"
	PreferenceMixed        LearningPreference = "mixed"
)

// LearningPreferences lists all valid preference values in prompt order.
func LearningPreferences() []LearningPreference {
	return []LearningPreference{
		PreferenceProjectBased,
		PreferenceVideoBased,
		PreferenceReading,
		PreferenceMixed,
	}
}

// Valid reports whether p is one of the enumerated preferences.
func (p LearningPreference) Valid() bool {
	switch p {
	case PreferenceProjectBased, PreferenceVideoBased, PreferenceReading, PreferenceMixed:
		return true
	}
	return false
}

// TechnicalSkill is one technical skill with its proficiency level.
type TechnicalSkill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// Skills groups the user's technical and soft skills.
type Skills struct {
	Technical []TechnicalSkill `json:"technical"`
	Soft      []string         `json:"soft"`
}

// Profile is the structured user record extracted from free text.
// The zero value means extraction failed or produced nothing; no field is
// guaranteed present.
type Profile struct {
	Domain                  string             `json:"domain"`
	Skills                  Skills             `json:"skills"`
	Goals                   []string           `json:"goals"`
	LearningPreference      LearningPreference `json:"learning_preference"`
	WeeklyAvailabilityHours int                `json:"weekly_availability_hours"`
}

// IsZero reports whether no profile data was extracted.
func (p Profile) IsZero() bool {
	return p.Domain == "" &&
		len(p.Skills.Technical) == 0 &&
		len(p.Skills.Soft) == 0 &&
		len(p.Goals) == 0 &&
		p.LearningPreference == "" &&
		p.WeeklyAvailabilityHours == 0
}
