package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumeace/internal/aitools"
	"github.com/jonathan/resumeace/internal/buffer"
	"github.com/jonathan/resumeace/internal/config"
	"github.com/jonathan/resumeace/internal/editor"
	"github.com/jonathan/resumeace/internal/export"
	"github.com/jonathan/resumeace/internal/llm"
	"github.com/jonathan/resumeace/internal/rendering"
	"github.com/jonathan/resumeace/internal/storage"
	"github.com/jonathan/resumeace/internal/types"
)

var (
	configPath  string
	storeFlag   string
	modeFlag    string
	verboseFlag bool

	// appConfig is the merged configuration of the running command
	appConfig config.Config
)

// newLLMClient creates the model client; tests replace it
var newLLMClient = func(ctx context.Context, cfg *llm.Config, apiKey string) (llm.Client, error) {
	return llm.NewClient(ctx, cfg, apiKey)
}

// loadConfig merges the config file, the environment and the persistent flags
func loadConfig(_ *cobra.Command, _ []string) error {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Default())

	if storeFlag != "" {
		cfg.StorePath = storeFlag
	}
	if modeFlag != "" {
		if _, err := types.ParseMode(modeFlag); err != nil {
			return err
		}
		cfg.DefaultMode = modeFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// session is one command's view of the stored documents
type session struct {
	buffer *buffer.Buffer
	markup *rendering.Markup
	mode   types.Mode
}

func openSession(ctx context.Context) (*session, error) {
	store, err := storage.Open(ctx, appConfig.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	markup := rendering.NewMarkup(nil, rendering.NewCache(0))
	mode := appConfig.Mode()
	buf := buffer.New(buffer.Options{Store: store, Renderer: markup, Active: mode})
	if err := buf.Load(ctx); err != nil {
		_ = buf.Close()
		return nil, err
	}
	return &session{buffer: buf, markup: markup, mode: mode}, nil
}

func (s *session) doc() *editor.Document { return s.buffer.Document(s.mode) }

func (s *session) content() string { return s.buffer.Content(s.mode) }

// save persists the active document if it changed
func (s *session) save(ctx context.Context) error {
	if !s.buffer.Dirty(s.mode) {
		return nil
	}
	return s.buffer.SaveMode(ctx, s.mode)
}

func (s *session) close() { _ = s.buffer.Close() }

// resolveSection accepts a 1-based position from "sections list" or a section id.
// Ids are regenerated whenever a document is loaded, so positions are the stable
// handle between invocations.
func (s *session) resolveSection(ref string) (string, error) {
	sections := s.doc().Sections()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(sections) {
			return "", fmt.Errorf("section %d out of range (document has %d sections)", n, len(sections))
		}
		return sections[n-1].ID, nil
	}
	if _, ok := s.doc().Section(ref); ok {
		return ref, nil
	}
	return "", fmt.Errorf("section %q not found", ref)
}

// newAIService connects to the model provider. The returned close func releases it.
func newAIService(ctx context.Context) (*aitools.Service, func(), error) {
	if appConfig.APIKey == "" {
		return nil, nil, fmt.Errorf("AI tools need an API key: set %s or api_key in the config file", config.EnvAPIKey)
	}
	client, err := newLLMClient(ctx, appConfig.LLMConfig(), appConfig.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return aitools.NewService(client), func() { _ = client.Close() }, nil
}

func newExporter(markup *rendering.Markup) *export.Exporter {
	return export.New(export.Options{
		Markup:        markup,
		Printer:       &export.ChromePrinter{Verbose: appConfig.Verbose},
		LaTeXTemplate: appConfig.LaTeXTemplate,
		Verbose:       appConfig.Verbose,
	})
}
