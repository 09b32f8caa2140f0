// Package persona classifies the user into one of six fixed audience
// categories used to tailor roadmap content.
package persona

// Persona is one of the six fixed audience categories. The same closed list
// feeds prompt construction and result validation.
type Persona string

const (
	CollegeStudent      Persona = "College student"
	WorkingTech         Persona = "Working professional (tech)"
	WorkingNonTech      Persona = "Working professional (non-tech)"
	MarketingSales      Persona = "Marketing/Sales background"
	NonTechEnteringTech Persona = "Non-tech aiming to enter tech"
	SeniorProfessional  Persona = "Senior professional (10+ years experience)"
)

// Categories lists all personas in prompt order.
func Categories() []Persona {
	return []Persona{
		CollegeStudent,
		WorkingTech,
		WorkingNonTech,
		MarketingSales,
		NonTechEnteringTech,
		SeniorProfessional,
	}
}

// Valid reports whether p is one of the six enumerated categories.
func (p Persona) Valid() bool {
	for _, c := range Categories() {
		if p == c {
			return true
		}
	}
	return false
}

// Result is the classification outcome. Both fields are empty when
// classification failed.
type Result struct {
	Persona       Persona `json:"persona"`
	Justification string  `json:"justification"`
}
