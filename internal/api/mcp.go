package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/audit"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/persona"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/pipeline"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
)

// ProfileExtractor abstracts the profile extraction stage for the MCP layer.
type ProfileExtractor interface {
	Extract(ctx context.Context, resume, interviewSummary, goals string) profile.Profile
}

// PersonaClassifier abstracts the persona classification stage for the MCP layer.
type PersonaClassifier interface {
	Classify(ctx context.Context, p profile.Profile) persona.Result
}

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Agent      Roadmapper
	Extractor  ProfileExtractor
	Classifier PersonaClassifier
	Store      *audit.Store // optional; if nil, the audit resource returns an empty list
}

// NewMCPServer creates an MCP server with the roadmap tools and resources registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"roadmap-agent",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("roadmap-agent — generates personalized GenAI learning roadmaps from a resume, interview notes, and goals."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("generate_roadmap",
			mcp.WithDescription("Run the full pipeline and return a personalized GenAI learning roadmap as a plain-text table."),
			mcp.WithString("resume", mcp.Description("Resume or background text"), mcp.Required()),
			mcp.WithString("interview_summary", mcp.Description("Interview or conversation notes")),
			mcp.WithString("goals", mcp.Description("Learning goals, free text")),
		),
		mcpGenerateRoadmap(deps),
	)

	s.AddTool(
		mcp.NewTool("extract_profile",
			mcp.WithDescription("Extract a structured user profile (domain, skills, goals, preferences) from free text."),
			mcp.WithString("resume", mcp.Description("Resume or background text"), mcp.Required()),
			mcp.WithString("interview_summary", mcp.Description("Interview or conversation notes")),
			mcp.WithString("goals", mcp.Description("Learning goals, free text")),
		),
		mcpExtractProfile(deps),
	)

	s.AddTool(
		mcp.NewTool("classify_persona",
			mcp.WithDescription("Classify a user profile into one of the known learner personas."),
			mcp.WithString("profile", mcp.Description("User profile as JSON, as produced by extract_profile"), mcp.Required()),
		),
		mcpClassifyPersona(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"audit://recent",
			"Recent Roadmap Runs",
			mcp.WithResourceDescription("Last 10 roadmap runs (summaries only)"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRecentRuns(deps),
	)

	return s
}

func mcpGenerateRoadmap(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resume, err := req.RequireString("resume")
		if err != nil {
			return mcpError("resume is required"), nil
		}

		result := deps.Agent.Generate(ctx, pipeline.Input{
			Resume:           resume,
			InterviewSummary: req.GetString("interview_summary", ""),
			Goals:            req.GetString("goals", ""),
		})

		text := result.Table
		if result.Metadata.FailedStages > 0 {
			text = fmt.Sprintf("%s\n(%d of %d stages failed; roadmap may be incomplete, run %s)",
				text, result.Metadata.FailedStages, len(result.Traces), result.Metadata.RunID)
		}
		return mcpText(text), nil
	}
}

func mcpExtractProfile(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resume, err := req.RequireString("resume")
		if err != nil {
			return mcpError("resume is required"), nil
		}

		p := deps.Extractor.Extract(ctx, resume, req.GetString("interview_summary", ""), req.GetString("goals", ""))

		b, err := json.Marshal(p)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal profile: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpClassifyPersona(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profileJSON, err := req.RequireString("profile")
		if err != nil {
			return mcpError("profile is required"), nil
		}

		var p profile.Profile
		if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
			return mcpError(fmt.Sprintf("invalid profile JSON: %v", err)), nil
		}

		result := deps.Classifier.Classify(ctx, p)

		b, err := json.Marshal(result)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceRecentRuns(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		var runs []audit.Run
		if deps.Store != nil {
			var err error
			runs, err = deps.Store.ListRuns(10)
			if err != nil {
				return nil, fmt.Errorf("failed to list runs: %w", err)
			}
		}

		type runSummary struct {
			ID           string `json:"id"`
			CreatedAt    string `json:"created_at"`
			Persona      string `json:"persona"`
			DurationDays int    `json:"duration_days"`
			FailedStages int    `json:"failed_stages"`
		}

		summaries := make([]runSummary, len(runs))
		for i, run := range runs {
			p := run.Persona
			if utf8.RuneCountInString(p) > 200 {
				runes := []rune(p)
				p = string(runes[:200]) + "..."
			}
			summaries[i] = runSummary{
				ID:           run.ID,
				CreatedAt:    run.CreatedAt.Format(time.RFC3339),
				Persona:      p,
				DurationDays: run.DurationDays,
				FailedStages: run.FailedStages,
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal runs: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
