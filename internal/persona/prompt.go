package persona

import (
	"fmt"
	"strings"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/llmjson"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
)

const promptTemplate = `Given the following user profile data (JSON):
%s

Classify the user into ONE of these categories:
- %s

Respond as a JSON object:
{
  "persona": <category>,
  "justification": <brief justification for your choice>
}

Output ONLY the JSON object.`

// BuildPrompt constructs the classification prompt embedding the profile as
// indented JSON and the fixed category list.
func BuildPrompt(p profile.Profile) string {
	cats := Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return fmt.Sprintf(promptTemplate, llmjson.Indent(p), strings.Join(names, "\n- "))
}
