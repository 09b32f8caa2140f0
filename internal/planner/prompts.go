package planner

import (
	"fmt"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/llmjson"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
)

const topicsPromptTemplate = `You are an expert GenAI curriculum designer. Given the user's profile and persona below, identify the most relevant GenAI topics/use-cases for them. For each topic, include a brief justification of why it is relevant for this user.

User Profile:
%s
Persona: %s

Respond as a JSON array of objects:
[
  {"topic": <topic>, "justification": <why this topic is relevant>}, ...
]

Output ONLY the JSON array.`

const structurePromptTemplate = `Given the user's profile and the following topics (with justifications):
%s

Propose a suitable roadmap duration (choose one: 21, 30, or 45 days) and structure the roadmap into levels (e.g., Foundations, Hands-on, Application). Assign topics to levels. Justify your choices based on the user's background, goals, and weekly availability.

Respond as a JSON object:
{
  "duration_days": <21|30|45>,
  "levels": [
    {"level": <int>, "title": <level title>, "topics": [<topic>, ...], "justification": <why this structure/leveling>}, ...
  ],
  "structure_justification": <overall justification>
}

Output ONLY the JSON object.`

const activitiesPromptTemplate = `Given the roadmap structure below, the user's learning preference, and their weekly availability, detail the specific learning activities for each topic. Estimate the hours required per activity so that the total fits within the duration and weekly hours. For each activity, provide a justification.

User Profile:
%s
Persona: %s
Roadmap Structure:
%s

Respond as a JSON object in this format:
{
  "levels": [
    {
      "level": <int>,
      "title": <level title>,
      "estimated_hours": <int>,
      "topics": [
        {
          "topic": <topic>,
          "activity": <activity description>,
          "estimated_hours": <int>,
          "justification": <why this activity/topic for this user>
        }, ...
      ]
    }, ...
  ],
  "total_estimated_hours": <int>
}

Output ONLY the JSON object.`

// BuildTopicsPrompt constructs the Think-stage prompt.
func BuildTopicsPrompt(p profile.Profile, persona string) string {
	return fmt.Sprintf(topicsPromptTemplate, llmjson.Indent(p), persona)
}

// BuildStructurePrompt constructs the Plan-stage prompt from the identified
// topics.
func BuildStructurePrompt(topics []Topic) string {
	return fmt.Sprintf(structurePromptTemplate, llmjson.Indent(topics))
}

// BuildActivitiesPrompt constructs the final-stage prompt from the profile,
// persona and proposed structure.
func BuildActivitiesPrompt(p profile.Profile, persona string, s Structure) string {
	return fmt.Sprintf(activitiesPromptTemplate, llmjson.Indent(p), persona, llmjson.Indent(s))
}
