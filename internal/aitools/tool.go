// Package aitools wraps the model client with the document tools of the editor:
// rewriting, translation, building a resume from a brief and job matching.
package aitools

import (
	"fmt"
	"strings"
)

// Tool is one of the AI actions offered by the editor
type Tool string

const (
	// ToolEnhance strengthens wording and adds metrics
	ToolEnhance Tool = "enhance"
	// ToolATS optimizes a resume for applicant tracking systems
	ToolATS Tool = "ats"
	// ToolRestructure reorders resume sections for impact
	ToolRestructure Tool = "restructure"
	// ToolTranslate translates a document into another language
	ToolTranslate Tool = "translate"
	// ToolBuild writes a resume from a short brief
	ToolBuild Tool = "build"
	// ToolAnalyze compares a resume against a job description
	ToolAnalyze Tool = "analyze"
)

// Tools lists every tool in menu order
var Tools = []Tool{ToolEnhance, ToolATS, ToolRestructure, ToolTranslate, ToolBuild, ToolAnalyze}

var toolLabels = map[Tool]string{
	ToolEnhance:     "Enhance Content",
	ToolATS:         "ATS Optimize",
	ToolRestructure: "Restructure",
	ToolTranslate:   "Translate",
	ToolBuild:       "Build Resume",
	ToolAnalyze:     "Job Match",
}

// ParseTool parses a tool name, case-insensitively
func ParseTool(s string) (Tool, error) {
	t := Tool(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := toolLabels[t]; !ok {
		return "", fmt.Errorf("unknown AI tool %q", s)
	}
	return t, nil
}

// Label returns the human readable name of the tool
func (t Tool) Label() string {
	if label, ok := toolLabels[t]; ok {
		return label
	}
	return string(t)
}

// IsRewrite reports whether the tool takes a document and returns a rewritten one
func (t Tool) IsRewrite() bool {
	switch t {
	case ToolEnhance, ToolATS, ToolRestructure:
		return true
	}
	return false
}
