package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumeace/internal/aitools"
	"github.com/jonathan/resumeace/internal/config"
	"github.com/jonathan/resumeace/internal/ingestion"
	"github.com/jonathan/resumeace/internal/server"
	"github.com/jonathan/resumeace/internal/server/ratelimit"
)

var (
	servePort int
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the editor over REST: documents, sections,
live preview, import, export, templates and the AI tools.

The AI routes answer 503 unless GEMINI_API_KEY (or api_key in the config file) is set.
Unsaved changes are written to the store when the server shuts down.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default port from config, 8080)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Interface to bind, e.g. 127.0.0.1")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	var svc *aitools.Service
	if appConfig.APIKey != "" {
		var closeClient func()
		svc, closeClient, err = newAIService(ctx)
		if err != nil {
			return err
		}
		defer closeClient()
	} else {
		log.Printf("[serve] warning: %s is not set, AI tools are disabled", config.EnvAPIKey)
	}

	port := servePort
	if port == 0 {
		port = appConfig.Port
	}
	srv, err := server.New(server.Config{
		Addr:     serveAddr,
		Port:     port,
		Buffer:   s.buffer,
		AI:       svc,
		Exporter: newExporter(s.markup),
		JobPosting: ingestion.JobPostingOptions{
			UseBrowser: appConfig.UseBrowser,
			Verbose:    appConfig.Verbose,
		},
		RateLimit: ratelimit.LoadConfig(),
		Verbose:   appConfig.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Start(ctx); err != nil {
		return err
	}
	if err := s.buffer.Save(ctx); err != nil {
		return fmt.Errorf("failed to save documents on shutdown: %w", err)
	}
	return nil
}
