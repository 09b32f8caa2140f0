package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/gemini"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/roadmap"
)

// scriptedGenerator returns queued responses in order, recording prompts.
type scriptedGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (s *scriptedGenerator) Generate(ctx context.Context, prompt string, cfg gemini.GenerateConfig) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := len(s.prompts) - 1
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var resp string
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

const (
	topicsJSON = `[
  {"topic": "Prompt Engineering", "justification": "core skill for workflow integration"},
  {"topic": "RAG", "justification": "matches backend background"}
]`

	structureJSON = `{
  "duration_days": 21,
  "levels": [
    {"level": 1, "title": "Foundations", "topics": ["Prompt Engineering"], "justification": "start with basics"},
    {"level": 2, "title": "Hands-on", "topics": ["RAG"], "justification": "apply to real systems"}
  ],
  "structure_justification": "fits 8 hrs/week"
}`

	activitiesJSON = `{
  "levels": [
    {
      "level": 1,
      "title": "Foundations",
      "estimated_hours": 10,
      "topics": [
        {"topic": "Prompt Engineering", "activity": "Build a prompt library", "estimated_hours": 10, "justification": "hands-on preference"}
      ]
    },
    {
      "level": 2,
      "title": "Hands-on",
      "estimated_hours": 14,
      "topics": [
        {"topic": "RAG", "activity": "Build a retrieval service", "estimated_hours": 14, "justification": "backend experience"}
      ]
    }
  ],
  "total_estimated_hours": 24
}`
)

func testProfile() profile.Profile {
	return profile.Profile{
		Domain:                  "Backend Engineering",
		Goals:                   []string{"Integrate GenAI into workflow"},
		LearningPreference:      profile.PreferenceProjectBased,
		WeeklyAvailabilityHours: 8,
	}
}

func TestPlanRoadmap_AllStagesSucceed(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{topicsJSON, structureJSON, activitiesJSON}}
	pl := New(gen)

	doc, traces := pl.PlanRoadmap(context.Background(), testProfile(), "Working professional (tech)", nil)

	if len(gen.prompts) != 3 {
		t.Fatalf("generator called %d times, want 3", len(gen.prompts))
	}
	if len(traces) != 3 {
		t.Fatalf("got %d traces, want 3", len(traces))
	}
	for _, tr := range traces {
		if tr.Failed() {
			t.Errorf("stage %s failed: %v", tr.Stage, tr.Err)
		}
	}

	if doc.DurationDays != 21 {
		t.Errorf("DurationDays = %d, want 21", doc.DurationDays)
	}
	if doc.TotalEstimatedHours != 24 {
		t.Errorf("TotalEstimatedHours = %d, want 24", doc.TotalEstimatedHours)
	}
	if len(doc.Levels) != 2 {
		t.Fatalf("len(Levels) = %d, want 2", len(doc.Levels))
	}
	if doc.Levels[1].Topics[0].Activity != "Build a retrieval service" {
		t.Errorf("unexpected activity: %q", doc.Levels[1].Topics[0].Activity)
	}
	if doc.Profile.Persona != "Working professional (tech)" {
		t.Errorf("Profile.Persona = %q", doc.Profile.Persona)
	}
	if !strings.Contains(doc.Title, "Working professional (tech)") {
		t.Errorf("Title = %q, want persona embedded", doc.Title)
	}

	// Stage chaining: the structure prompt embeds the parsed topics, the
	// activities prompt embeds the parsed structure.
	if !strings.Contains(gen.prompts[1], "Prompt Engineering") {
		t.Error("structure prompt does not embed identified topics")
	}
	if !strings.Contains(gen.prompts[2], "Foundations") {
		t.Error("activities prompt does not embed proposed structure")
	}
}

func TestPlanRoadmap_PrecomputedTopicsSkipThink(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{structureJSON, activitiesJSON}}
	pl := New(gen)

	topics := []Topic{{Topic: "Agents", Justification: "precomputed"}}
	doc, traces := pl.PlanRoadmap(context.Background(), testProfile(), "College student", topics)

	if len(gen.prompts) != 2 {
		t.Fatalf("generator called %d times, want 2 (think stage skipped)", len(gen.prompts))
	}
	if len(traces) != 2 {
		t.Errorf("got %d traces, want 2", len(traces))
	}
	if !strings.Contains(gen.prompts[0], "Agents") {
		t.Error("structure prompt does not embed precomputed topics")
	}
	if doc.DurationDays != 21 {
		t.Errorf("DurationDays = %d, want 21", doc.DurationDays)
	}
}

func TestPlanRoadmap_AllStagesFail(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []string{"", "", ""},
		errs:      []error{errors.New("down"), errors.New("down"), errors.New("down")},
	}
	pl := New(gen)

	doc, traces := pl.PlanRoadmap(context.Background(), testProfile(), "", nil)

	for _, tr := range traces {
		if !tr.Failed() {
			t.Errorf("stage %s should have failed", tr.Stage)
		}
	}
	if doc.DurationDays != roadmap.DefaultDurationDays {
		t.Errorf("DurationDays = %d, want default %d", doc.DurationDays, roadmap.DefaultDurationDays)
	}
	if doc.TotalEstimatedHours != 0 {
		t.Errorf("TotalEstimatedHours = %d, want 0", doc.TotalEstimatedHours)
	}
	if len(doc.Levels) != 0 {
		t.Errorf("len(Levels) = %d, want 0", len(doc.Levels))
	}
}

func TestPlanRoadmap_MalformedMiddleStage(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{topicsJSON, "certainly! here is your structure:", activitiesJSON}}
	pl := New(gen)

	doc, traces := pl.PlanRoadmap(context.Background(), testProfile(), "College student", nil)

	if !traces[1].Failed() {
		t.Error("structure stage should have failed")
	}
	if traces[0].Failed() || traces[2].Failed() {
		t.Error("only the structure stage should have failed")
	}
	// Structure failure degrades to default duration; activities still ran.
	if doc.DurationDays != roadmap.DefaultDurationDays {
		t.Errorf("DurationDays = %d, want default", doc.DurationDays)
	}
	if doc.TotalEstimatedHours != 24 {
		t.Errorf("TotalEstimatedHours = %d, want 24", doc.TotalEstimatedHours)
	}
}

func TestAssemble_NormalizesDuration(t *testing.T) {
	doc := Assemble(testProfile(), "College student", Structure{DurationDays: 60}, Activities{})
	if doc.DurationDays != roadmap.DefaultDurationDays {
		t.Errorf("DurationDays = %d, want normalized default", doc.DurationDays)
	}

	for _, d := range []int{21, 30, 45} {
		doc := Assemble(testProfile(), "x", Structure{DurationDays: d}, Activities{})
		if doc.DurationDays != d {
			t.Errorf("DurationDays = %d, want %d preserved", doc.DurationDays, d)
		}
	}
}
