package aitools

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/resumeace/internal/llm"
	"github.com/jonathan/resumeace/internal/prompts"
	"github.com/jonathan/resumeace/internal/schemas"
	"github.com/jonathan/resumeace/internal/types"
)

// Brief defaults used when the user leaves a field empty
const (
	DefaultIndustry        = "Technology"
	DefaultExperienceYears = 5
	DefaultSkills          = "Professional skills"
)

// Service runs the AI tools against a model client
type Service struct {
	client llm.Client
}

// NewService creates a Service backed by client
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// Rewrite runs one of the rewriting tools over content and returns the new grammar text
func (s *Service) Rewrite(ctx context.Context, tool Tool, content string) (string, error) {
	if !tool.IsRewrite() {
		return "", &InputError{Field: "tool", Message: string(tool) + " is not a rewriting tool"}
	}
	if strings.TrimSpace(content) == "" {
		return "", &InputError{Field: "content", Message: "document is empty"}
	}
	return s.generate(ctx, tool, llm.TierStandard, map[string]string{"Content": content})
}

// Translate rewrites content in language, keeping the markup
func (s *Service) Translate(ctx context.Context, content, language string) (string, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return "", &InputError{Field: "language", Message: "target language is required"}
	}
	if strings.TrimSpace(content) == "" {
		return "", &InputError{Field: "content", Message: "document is empty"}
	}
	return s.generate(ctx, ToolTranslate, llm.TierLite, map[string]string{
		"Content":  content,
		"Language": language,
	})
}

// Build writes a whole resume from brief
func (s *Service) Build(ctx context.Context, brief types.ResumeBrief) (string, error) {
	if err := brief.Validate(); err != nil {
		return "", &InputError{Field: "brief", Message: err.Error()}
	}
	industry := strings.TrimSpace(brief.Industry)
	if industry == "" {
		industry = DefaultIndustry
	}
	years := brief.ExperienceYears
	if years == 0 {
		years = DefaultExperienceYears
	}
	skills := strings.TrimSpace(brief.Skills)
	if skills == "" {
		skills = DefaultSkills
	}
	return s.generate(ctx, ToolBuild, llm.TierAdvanced, map[string]string{
		"Name":            strings.TrimSpace(brief.Name),
		"JobTitle":        strings.TrimSpace(brief.JobTitle),
		"Industry":        industry,
		"ExperienceYears": strconv.Itoa(years),
		"Skills":          skills,
	})
}

// AnalyzeJob scores resume against a job description. The reply must satisfy the
// job_match schema; anything else is a ParseError.
func (s *Service) AnalyzeJob(ctx context.Context, resume, jobDescription string) (*types.JobMatch, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, &InputError{Field: "resume", Message: "document is empty"}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &InputError{Field: "job_description", Message: "job description is required"}
	}

	prompt, err := prompts.Render(string(ToolAnalyze), map[string]string{
		"Resume":         resume,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return nil, &APICallError{Tool: ToolAnalyze, Message: "failed to build prompt", Cause: err}
	}

	reply, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Tool: ToolAnalyze, Message: "failed to generate analysis", Cause: err}
	}
	reply = llm.CleanJSONBlock(reply)

	if err := schemas.Validate(schemas.JobMatch, reply); err != nil {
		return nil, &ParseError{Message: "analysis does not match schema", Cause: err}
	}

	var match types.JobMatch
	if err := json.Unmarshal([]byte(reply), &match); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal analysis", Cause: err}
	}
	match.FoundSkills = normalizeSkills(match.FoundSkills)
	match.MissingSkills = normalizeSkills(match.MissingSkills)
	match.Strengths = cleanList(match.Strengths)
	match.Improvements = cleanList(match.Improvements)
	return &match, nil
}

func (s *Service) generate(ctx context.Context, tool Tool, tier llm.ModelTier, data map[string]string) (string, error) {
	prompt, err := prompts.Render(string(tool), data)
	if err != nil {
		return "", &APICallError{Tool: tool, Message: "failed to build prompt", Cause: err}
	}

	reply, err := s.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", &APICallError{Tool: tool, Message: "failed to generate content", Cause: err}
	}
	return llm.CleanCodeFence(reply), nil
}
