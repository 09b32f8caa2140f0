package profile

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are an expert career coach and GenAI learning consultant. Given the following user inputs:

Resume:
%s

Interview Summary:
%s

Personal Goals:
%s

Extract the following as a JSON object:
- domain: User's professional domain/field
- skills: { "technical": [objects with "name" and "proficiency"], "soft": [list of strings] }
- goals: List of specific goals
- learning_preference: One of [%s]
- weekly_availability_hours: Integer estimate

Output ONLY the JSON object. Do not include any explanation.`

// BuildPrompt constructs the extraction prompt embedding the three raw inputs
// and the closed learning-preference list.
func BuildPrompt(resume, interviewSummary, goals string) string {
	prefs := LearningPreferences()
	quoted := make([]string, len(prefs))
	for i, p := range prefs {
		quoted[i] = fmt.Sprintf("%q", string(p))
	}
	return fmt.Sprintf(promptTemplate, resume, interviewSummary, goals, strings.Join(quoted, ", "))
}
