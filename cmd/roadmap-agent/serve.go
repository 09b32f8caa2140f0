package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/api"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/audit"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/config"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/gemini"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/persona"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/pipeline"
	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/profile"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the roadmap service (localhost HTTP + MCP over stdio)",
	Long: `Run the roadmap service in the foreground.

The HTTP API binds to 127.0.0.1 only. Set ROADMAP_API_TOKEN to require a
bearer token on the /v1 routes. The MCP server speaks stdio, so the process
can be registered directly as an MCP server in editors and agent runtimes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mcpOnly, _ := cmd.Flags().GetBool("mcp-only")
		return runServer(mcpOnly)
	},
}

func init() {
	serveCmd.Flags().Bool("mcp-only", false, "serve MCP over stdio without the HTTP listener")
}

func runServer(mcpOnly bool) error {
	fmt.Fprintf(os.Stderr, "roadmap-agent version %s\n", version)

	cfg := config.Load()
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	initLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return err
	}
	client.SetDefaults(cfg.Gemini.Temperature, cfg.Gemini.MaxOutputTokens)

	store, err := audit.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening audit store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing audit store: %v\n", err)
		}
	}()

	agent := pipeline.NewAgent(client, pipeline.WithAuditStore(store))

	// MCP server over stdio.
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Agent:      agent,
		Extractor:  profile.NewExtractor(client),
		Classifier: persona.NewClassifier(client),
		Store:      store,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)
	go func() {
		if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
	}()
	slog.Info("MCP server started (stdio transport)", "model", client.Model())

	if mcpOnly {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "shutting down...")
		return nil
	}

	handler := api.NewAppHandler(api.AppDeps{
		Agent: agent,
		Store: store,
		Token: cfg.API.Token,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "roadmap-agent listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
