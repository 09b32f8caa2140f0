package api

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/audit"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/persona"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
)

// --- mocks ---

type mockExtractor struct {
	profile profile.Profile
}

func (m *mockExtractor) Extract(_ context.Context, _, _, _ string) profile.Profile {
	return m.profile
}

type mockClassifier struct {
	result persona.Result
	lastIn profile.Profile
}

func (m *mockClassifier) Classify(_ context.Context, p profile.Profile) persona.Result {
	m.lastIn = p
	return m.result
}

// --- helpers ---

func newTestMCPDeps(t *testing.T) (MCPDeps, *audit.Store) {
	t.Helper()
	store, err := audit.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	deps := MCPDeps{
		Agent: &mockAgent{result: sampleResult()},
		Extractor: &mockExtractor{profile: profile.Profile{
			Domain:             "Backend Engineering",
			LearningPreference: profile.PreferenceProjectBased,
		}},
		Classifier: &mockClassifier{result: persona.Result{
			Persona:       persona.WorkingTech,
			Justification: "backend background",
		}},
		Store: store,
	}
	return deps, store
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// --- tests ---

func TestMCPGenerateRoadmap(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpGenerateRoadmap(deps)

	result, err := handler(context.Background(), makeCallToolRequest("generate_roadmap", map[string]interface{}{
		"resume": "5 years backend",
		"goals":  "ship a RAG app",
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("IsError = true, text = %s", toolText(t, result))
	}
	if !strings.Contains(toolText(t, result), "Duration: 30 days") {
		t.Errorf("text = %q", toolText(t, result))
	}
}

func TestMCPGenerateRoadmap_MissingResume(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpGenerateRoadmap(deps)

	result, err := handler(context.Background(), makeCallToolRequest("generate_roadmap", nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected IsError for missing resume")
	}
}

func TestMCPGenerateRoadmap_ReportsFailedStages(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	agent := deps.Agent.(*mockAgent)
	agent.result.Metadata.FailedStages = 2

	handler := mcpGenerateRoadmap(deps)
	result, err := handler(context.Background(), makeCallToolRequest("generate_roadmap", map[string]interface{}{
		"resume": "r",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(toolText(t, result), "stages failed") {
		t.Errorf("text = %q", toolText(t, result))
	}
}

func TestMCPExtractProfile(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpExtractProfile(deps)

	result, err := handler(context.Background(), makeCallToolRequest("extract_profile", map[string]interface{}{
		"resume": "5 years backend",
	}))
	if err != nil {
		t.Fatal(err)
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(toolText(t, result)), &p); err != nil {
		t.Fatalf("tool output is not a profile: %v", err)
	}
	if p.Domain != "Backend Engineering" {
		t.Errorf("Domain = %q", p.Domain)
	}
}

func TestMCPClassifyPersona(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpClassifyPersona(deps)

	result, err := handler(context.Background(), makeCallToolRequest("classify_persona", map[string]interface{}{
		"profile": `{"domain":"Backend Engineering"}`,
	}))
	if err != nil {
		t.Fatal(err)
	}

	var r persona.Result
	if err := json.Unmarshal([]byte(toolText(t, result)), &r); err != nil {
		t.Fatalf("tool output is not a persona result: %v", err)
	}
	if r.Persona != persona.WorkingTech {
		t.Errorf("Persona = %q", r.Persona)
	}

	classifier := deps.Classifier.(*mockClassifier)
	if classifier.lastIn.Domain != "Backend Engineering" {
		t.Errorf("classifier input domain = %q", classifier.lastIn.Domain)
	}
}

func TestMCPClassifyPersona_InvalidJSON(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpClassifyPersona(deps)

	result, err := handler(context.Background(), makeCallToolRequest("classify_persona", map[string]interface{}{
		"profile": "{not json",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected IsError for invalid profile JSON")
	}
}

func TestMCPResourceRecentRuns(t *testing.T) {
	deps, store := newTestMCPDeps(t)

	run := audit.Run{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now().UTC(),
		Persona:      "College student",
		DurationDays: 21,
	}
	if err := store.SaveRun(run, nil); err != nil {
		t.Fatal(err)
	}

	handler := mcpResourceRecentRuns(deps)
	contents, err := handler(context.Background(), makeReadResourceRequest("audit://recent"))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d", len(contents))
	}

	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}

	var summaries []map[string]any
	if err := json.Unmarshal([]byte(tc.Text), &summaries); err != nil {
		t.Fatalf("resource is not JSON: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d", len(summaries))
	}
	if summaries[0]["persona"] != "College student" {
		t.Errorf("persona = %v", summaries[0]["persona"])
	}
}

func TestMCPResourceRecentRuns_NoStore(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	deps.Store = nil

	handler := mcpResourceRecentRuns(deps)
	contents, err := handler(context.Background(), makeReadResourceRequest("audit://recent"))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	tc := contents[0].(mcp.TextResourceContents)
	if tc.Text != "[]" {
		t.Errorf("text = %q, want empty list", tc.Text)
	}
}
