package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/audit"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/config"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/filetext"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/gemini"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/pipeline"
)

// --- generate ---

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a personalized GenAI learning roadmap",
	Long: `Generate a personalized GenAI learning roadmap.

Each input flag accepts either inline text or a path to a .txt, .pdf, or
.docx file.

Examples:
  roadmap-agent generate --resume resume.pdf --goals "break into GenAI engineering"
  roadmap-agent generate --resume resume.docx --interview notes.txt --pdf roadmap.pdf
  roadmap-agent generate --resume "10 years in marketing, no coding" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resumeFlag, _ := cmd.Flags().GetString("resume")
		interviewFlag, _ := cmd.Flags().GetString("interview")
		goalsFlag, _ := cmd.Flags().GetString("goals")
		jsonOut, _ := cmd.Flags().GetBool("json")
		pdfPath, _ := cmd.Flags().GetString("pdf")
		parallel, _ := cmd.Flags().GetBool("parallel")
		showTrace, _ := cmd.Flags().GetBool("trace")
		noAudit, _ := cmd.Flags().GetBool("no-audit")

		if resumeFlag == "" && interviewFlag == "" && goalsFlag == "" {
			return fmt.Errorf("one of --resume, --interview, or --goals is required")
		}

		resume, err := resolveInput(resumeFlag)
		if err != nil {
			return err
		}
		interview, err := resolveInput(interviewFlag)
		if err != nil {
			return err
		}
		goals, err := resolveInput(goalsFlag)
		if err != nil {
			return err
		}

		cfg := config.Load()
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		initLogging(cfg.Log.Level)

		ctx := cmd.Context()
		client, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		client.SetDefaults(cfg.Gemini.Temperature, cfg.Gemini.MaxOutputTokens)

		opts := []pipeline.Option{pipeline.WithParallel(parallel)}
		if !noAudit {
			store, err := audit.Open(cfg.Storage.DataDir)
			if err != nil {
				printWarning("audit store unavailable, run will not be recorded: %v", err)
			} else {
				defer store.Close()
				opts = append(opts, pipeline.WithAuditStore(store))
			}
		}

		agent := pipeline.NewAgent(client, opts...)

		printStep("Generating roadmap with %s...", client.Model())
		result := agent.Generate(ctx, pipeline.Input{
			Resume:           resume,
			InterviewSummary: interview,
			Goals:            goals,
			PDF:              pdfPath != "",
		})

		if result.Metadata.FailedStages > 0 {
			printWarning("%d of %d stages failed; roadmap may be incomplete",
				result.Metadata.FailedStages, len(result.Traces))
		}

		if showTrace {
			for _, tr := range result.Traces {
				status := "ok"
				if tr.Failed() {
					status = tr.Err.Error()
				}
				printStatus(tr.Stage, "%s (%dms)", status, tr.Duration.Milliseconds())
			}
		}

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result.Document); err != nil {
				return err
			}
		} else {
			fmt.Println(result.Table)
		}

		if pdfPath != "" {
			if result.PDF == nil {
				printError("PDF rendering failed, see log output")
			} else if err := os.WriteFile(pdfPath, result.PDF, 0o644); err != nil {
				return fmt.Errorf("writing PDF: %w", err)
			} else {
				printSuccess("PDF written to %s", pdfPath)
			}
		}

		printStatus("Run", "%s (%.1fs)", result.Metadata.RunID, result.Metadata.Duration.Seconds())
		return nil
	},
}

func init() {
	generateCmd.Flags().String("resume", "", "resume text or path to a .txt/.pdf/.docx file")
	generateCmd.Flags().String("interview", "", "interview summary text or file path")
	generateCmd.Flags().String("goals", "", "learning goals text or file path")
	generateCmd.Flags().Bool("json", false, "print the roadmap as JSON instead of a table")
	generateCmd.Flags().String("pdf", "", "also write the roadmap as PDF to this path")
	generateCmd.Flags().Bool("parallel", false, "classify persona and identify topics concurrently")
	generateCmd.Flags().Bool("trace", false, "print per-stage status to stderr")
	generateCmd.Flags().Bool("no-audit", false, "skip recording the run in the audit store")
}

// resolveInput treats value as a file path when it points at an existing
// regular file and extracts its text; otherwise the value is used verbatim.
func resolveInput(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if info, err := os.Stat(value); err == nil && info.Mode().IsRegular() {
		text, err := filetext.FromFile(value)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", value, err)
		}
		return text, nil
	}
	return value, nil
}

// --- models ---

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List Gemini models available to the configured API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		initLogging(cfg.Log.Level)

		client, err := gemini.New(cmd.Context(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}

		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return err
		}

		for _, m := range models {
			name := m.Name
			if name == cfg.Gemini.Model || strings.HasSuffix(name, "/"+cfg.Gemini.Model) {
				name = colorize(colorBold, name) + "  (configured)"
			}
			fmt.Printf("%s\n", name)
			if len(m.Actions) > 0 {
				fmt.Printf("  actions: %s\n", strings.Join(m.Actions, ", "))
			}
		}
		return nil
	},
}

// --- audit ---

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect recorded roadmap runs",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openAuditStore()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		for _, run := range runs {
			failed := ""
			if run.FailedStages > 0 {
				failed = colorize(colorYellow, fmt.Sprintf("  (%d stages failed)", run.FailedStages))
			}
			fmt.Printf("%s  %s  %dd/%dh  %s%s\n",
				colorize(colorCyan, run.ID[:8]),
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.DurationDays,
				run.TotalEstimatedHours,
				run.Persona,
				failed,
			)
		}
		return nil
	},
}

var auditShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a single run with its stage traces",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")

		store, err := openAuditStore()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.GetRun(args[0])
		if err != nil {
			return err
		}
		traces, err := store.GetTraces(run.ID)
		if err != nil {
			return err
		}

		printStatus("Run", "%s", run.ID)
		printStatus("Created", "%s", run.CreatedAt.Format("2006-01-02 15:04:05"))
		printStatus("Persona", "%s", run.Persona)
		printStatus("Duration", "%d days, %d hours total", run.DurationDays, run.TotalEstimatedHours)

		for _, tr := range traces {
			status := "ok"
			if tr.Error != "" {
				status = colorize(colorRed, tr.Error)
			}
			fmt.Printf("\n%s  %s (%dms)\n", colorize(colorBold, tr.Stage), status, tr.DurationMs)
			if full {
				fmt.Printf("--- prompt ---\n%s\n--- response ---\n%s\n", tr.Prompt, tr.Response)
			}
		}

		if full {
			fmt.Printf("\n--- roadmap ---\n%s\n", run.RoadmapJSON)
		}
		return nil
	},
}

func openAuditStore() (*audit.Store, error) {
	cfg := config.Load()
	initLogging(cfg.Log.Level)
	store, err := audit.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening audit store: %w", err)
	}
	return store, nil
}

func init() {
	auditListCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	auditShowCmd.Flags().Bool("full", false, "include prompts, responses, and the roadmap JSON")
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditShowCmd)
}
