package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/resumeace/internal/aitools"
	"github.com/jonathan/resumeace/internal/ingestion"
	"github.com/jonathan/resumeace/internal/types"
)

// AIRequest carries the tool-specific inputs. Rewrite tools need none.
type AIRequest struct {
	Language       string             `json:"language,omitempty"`
	JobDescription string             `json:"job_description,omitempty"`
	JobURL         string             `json:"job_url,omitempty"`
	Brief          *types.ResumeBrief `json:"brief,omitempty"`
}

// JobMatchResponse is returned by the analyze tool, which leaves the document unchanged
type JobMatchResponse struct {
	Mode  types.Mode      `json:"mode"`
	Match *types.JobMatch `json:"match"`
}

type toolInfo struct {
	ID      aitools.Tool `json:"id"`
	Label   string       `json:"label"`
	Rewrite bool         `json:"rewrite"`
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	tools := make([]toolInfo, 0, len(aitools.Tools))
	for _, t := range aitools.Tools {
		tools = append(tools, toolInfo{ID: t, Label: t.Label(), Rewrite: t.IsRewrite()})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"available": s.ai != nil,
		"tools":     tools,
	})
}

// handleAI runs one AI tool. The model call happens outside the buffer lock; the
// result is only applied if nobody edited the document in the meantime.
func (s *Server) handleAI(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	name := r.PathValue("tool")
	tool, err := aitools.ParseTool(name)
	if err != nil {
		s.fail(w, r, &ErrNotFound{Resource: "tool", ID: name})
		return
	}
	if s.ai == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "AI tools (no API key configured)"})
		return
	}

	var req AIRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	content, version := s.snapshot(mode)
	ctx := r.Context()
	if s.verbose {
		log.Printf("[ai] %s on %s (%d bytes)", tool, mode, len(content))
	}

	var text string
	switch {
	case tool.IsRewrite():
		text, err = s.ai.Rewrite(ctx, tool, content)
	case tool == aitools.ToolTranslate:
		text, err = s.ai.Translate(ctx, content, req.Language)
	case tool == aitools.ToolBuild:
		if req.Brief == nil {
			s.fail(w, r, &ErrValidation{Field: "brief", Message: "required"})
			return
		}
		text, err = s.ai.Build(ctx, *req.Brief)
	case tool == aitools.ToolAnalyze:
		s.handleAnalyze(w, r, mode, content, req)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp, err := s.commit(mode, version, text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, mode types.Mode, content string, req AIRequest) {
	jobDescription := strings.TrimSpace(req.JobDescription)
	if jobDescription == "" && req.JobURL != "" {
		posting, err := ingestion.FetchJobPosting(r.Context(), req.JobURL, s.jobPosting)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		jobDescription = posting
	}

	match, err := s.ai.AnalyzeJob(r.Context(), content, jobDescription)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, JobMatchResponse{Mode: mode, Match: match})
}
