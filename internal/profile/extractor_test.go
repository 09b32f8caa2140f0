package profile

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/gemini"
)

// mockGenerator implements Generator for testing.
type mockGenerator struct {
	response string
	err      error
	prompt   string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, cfg gemini.GenerateConfig) (string, error) {
	m.prompt = prompt
	return m.response, m.err
}

const wellFormedProfile = `{
  "domain": "Backend Engineering",
  "skills": {
    "technical": [{"name": "Python", "proficiency": "Advanced"}],
    "soft": ["mentoring"]
  },
  "goals": ["Integrate GenAI into current development workflow"],
  "learning_preference": "project-based",
  "weekly_availability_hours": 8
}`

func TestExtract_WellFormed(t *testing.T) {
	mock := &mockGenerator{response: wellFormedProfile}
	e := NewExtractor(mock)

	got := e.Extract(context.Background(), "5 years backend, Python advanced", "prefers hands-on, 8 hrs/week", "integrate GenAI into workflow")

	want := Profile{
		Domain: "Backend Engineering",
		Skills: Skills{
			Technical: []TechnicalSkill{{Name: "Python", Proficiency: "Advanced"}},
			Soft:      []string{"mentoring"},
		},
		Goals:                   []string{"Integrate GenAI into current development workflow"},
		LearningPreference:      PreferenceProjectBased,
		WeeklyAvailabilityHours: 8,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestExtract_FencedResponse(t *testing.T) {
	mock := &mockGenerator{response: "```json\n" + wellFormedProfile + "\n```"}
	e := NewExtractor(mock)

	got := e.Extract(context.Background(), "resume", "interview", "goals")
	if got.Domain != "Backend Engineering" {
		t.Errorf("Extract() domain = %q, want Backend Engineering", got.Domain)
	}
}

func TestExtract_MalformedJSON(t *testing.T) {
	mock := &mockGenerator{response: "I could not produce JSON, sorry."}
	e := NewExtractor(mock)

	got := e.Extract(context.Background(), "resume", "interview", "goals")
	if !got.IsZero() {
		t.Errorf("Extract() = %+v, want zero profile", got)
	}
}

func TestExtract_GeneratorError(t *testing.T) {
	mock := &mockGenerator{err: errors.New("quota exceeded")}
	e := NewExtractor(mock)

	got := e.Extract(context.Background(), "resume", "interview", "goals")
	if !got.IsZero() {
		t.Errorf("Extract() = %+v, want zero profile", got)
	}
}

func TestExtractTrace(t *testing.T) {
	mock := &mockGenerator{response: wellFormedProfile}
	e := NewExtractor(mock)

	p, tr := e.ExtractTrace(context.Background(), "my resume", "my interview", "my goals")
	if p.IsZero() {
		t.Fatal("ExtractTrace() returned zero profile for well-formed response")
	}
	if tr.Failed() {
		t.Errorf("trace.Err = %v, want nil", tr.Err)
	}
	if tr.Prompt != mock.prompt {
		t.Error("trace prompt does not match the prompt sent to the generator")
	}
	if tr.Response != wellFormedProfile {
		t.Error("trace response does not match the raw model output")
	}
}

func TestExtractTrace_MalformedSetsErr(t *testing.T) {
	mock := &mockGenerator{response: "{broken"}
	e := NewExtractor(mock)

	_, tr := e.ExtractTrace(context.Background(), "r", "i", "g")
	if !tr.Failed() {
		t.Error("trace.Failed() = false, want true for malformed response")
	}
	if tr.Response != "{broken" {
		t.Errorf("trace.Response = %q, want raw output preserved", tr.Response)
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("RESUME-TEXT", "INTERVIEW-TEXT", "GOALS-TEXT")

	for _, want := range []string{
		"RESUME-TEXT",
		"INTERVIEW-TEXT",
		"GOALS-TEXT",
		`"project-based", "video-based", "reading", "mixed"`,
		"Output ONLY the JSON object",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildPrompt() missing %q", want)
		}
	}
}

func TestLearningPreference_Valid(t *testing.T) {
	for _, p := range LearningPreferences() {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if LearningPreference("osmosis").Valid() {
		t.Error("unknown preference should not be valid")
	}
}
