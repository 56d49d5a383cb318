package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumeace/internal/aitools"
	"github.com/jonathan/resumeace/internal/ingestion"
	"github.com/jonathan/resumeace/internal/observability"
	"github.com/jonathan/resumeace/internal/types"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Run the AI tools over the active document",
	Long: `Runs the Gemini-backed tools. Every tool except analyze replaces the active
document with the model's answer; use --dry-run to print it instead.

Requires GEMINI_API_KEY (or api_key in the config file).`,
}

var aiTranslateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate the active document",
	Args:  cobra.NoArgs,
	RunE:  runAITranslate,
}

var aiBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write a new resume from a short brief",
	Args:  cobra.NoArgs,
	RunE:  runAIBuild,
}

var aiAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare the resume against a job description",
	Long: `Scores the active document against a job description given as a file, as
text or as a posting URL. The document is not changed.`,
	Args: cobra.NoArgs,
	RunE: runAIAnalyze,
}

var (
	aiDryRun      bool
	aiLanguage    string
	aiBrief       types.ResumeBrief
	aiJobFile     string
	aiJobText     string
	aiJobURL      string
	aiAnalyzeJSON bool
)

func init() {
	for _, tool := range aitools.Tools {
		if !tool.IsRewrite() {
			continue
		}
		cmd := &cobra.Command{
			Use:   string(tool),
			Short: tool.Label() + " the active document",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runAIRewrite(cmd, tool)
			},
		}
		cmd.Flags().BoolVar(&aiDryRun, "dry-run", false, "Print the result instead of saving it")
		aiCmd.AddCommand(cmd)
	}

	aiTranslateCmd.Flags().StringVarP(&aiLanguage, "language", "l", "", "Target language, e.g. Spanish (required)")
	aiTranslateCmd.Flags().BoolVar(&aiDryRun, "dry-run", false, "Print the result instead of saving it")
	_ = aiTranslateCmd.MarkFlagRequired("language")

	aiBuildCmd.Flags().StringVarP(&aiBrief.Name, "name", "n", "", "Full name (required)")
	aiBuildCmd.Flags().StringVar(&aiBrief.JobTitle, "job-title", "", "Target job title (required)")
	aiBuildCmd.Flags().StringVar(&aiBrief.Industry, "industry", "", "Industry (default Technology)")
	aiBuildCmd.Flags().IntVar(&aiBrief.ExperienceYears, "years", 0, "Years of experience (default 5)")
	aiBuildCmd.Flags().StringVar(&aiBrief.Skills, "skills", "", "Comma-separated key skills")
	aiBuildCmd.Flags().BoolVar(&aiDryRun, "dry-run", false, "Print the result instead of saving it")

	aiAnalyzeCmd.Flags().StringVarP(&aiJobFile, "job", "j", "", "Path to a job description file (.txt, .md or .html)")
	aiAnalyzeCmd.Flags().StringVar(&aiJobText, "job-text", "", "Job description text")
	aiAnalyzeCmd.Flags().StringVar(&aiJobURL, "job-url", "", "URL of a job posting to fetch")
	aiAnalyzeCmd.Flags().BoolVar(&aiAnalyzeJSON, "json", false, "Print the analysis as JSON")
	aiAnalyzeCmd.MarkFlagsMutuallyExclusive("job", "job-text", "job-url")
	aiAnalyzeCmd.MarkFlagsOneRequired("job", "job-text", "job-url")

	aiCmd.AddCommand(aiTranslateCmd, aiBuildCmd, aiAnalyzeCmd)
	rootCmd.AddCommand(aiCmd)
}

func runAIRewrite(cmd *cobra.Command, tool aitools.Tool) error {
	return runAITool(cmd, tool, func(ctx context.Context, svc *aitools.Service, content string) (string, error) {
		return svc.Rewrite(ctx, tool, content)
	})
}

func runAITranslate(cmd *cobra.Command, _ []string) error {
	return runAITool(cmd, aitools.ToolTranslate, func(ctx context.Context, svc *aitools.Service, content string) (string, error) {
		return svc.Translate(ctx, content, aiLanguage)
	})
}

func runAIBuild(cmd *cobra.Command, _ []string) error {
	return runAITool(cmd, aitools.ToolBuild, func(ctx context.Context, svc *aitools.Service, _ string) (string, error) {
		return svc.Build(ctx, aiBrief)
	})
}

// runAITool sends the active document through run and stores or prints the answer
func runAITool(cmd *cobra.Command, tool aitools.Tool, run func(context.Context, *aitools.Service, string) (string, error)) error {
	ctx := context.Background()
	svc, closeClient, err := newAIService(ctx)
	if err != nil {
		return err
	}
	defer closeClient()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if appConfig.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[ai] running %s on the %s\n", tool.Label(), s.mode.Title())
	}
	text, err := run(ctx, svc, s.content())
	if err != nil {
		return err
	}

	if aiDryRun {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := s.buffer.Replace(s.mode, text); err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: updated the %s (%d sections)\n", tool.Label(), s.mode.Title(), s.doc().Len())
	return nil
}

func runAIAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	jobDescription, err := loadJobDescription(ctx)
	if err != nil {
		return err
	}

	svc, closeClient, err := newAIService(ctx)
	if err != nil {
		return err
	}
	defer closeClient()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	match, err := svc.AnalyzeJob(ctx, s.content(), jobDescription)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if aiAnalyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(match)
	}
	observability.NewPrinter(out).PrintJobMatch(match)
	return nil
}

func loadJobDescription(ctx context.Context) (string, error) {
	switch {
	case aiJobText != "":
		return strings.TrimSpace(aiJobText), nil
	case aiJobFile != "":
		text, err := ingestion.ImportFile(aiJobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	default:
		return ingestion.FetchJobPosting(ctx, aiJobURL, ingestion.JobPostingOptions{
			UseBrowser: appConfig.UseBrowser,
			Verbose:    appConfig.Verbose,
		})
	}
}
