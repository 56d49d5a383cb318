package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/resumeace/internal/export"
	"github.com/jonathan/resumeace/internal/templates"
	"github.com/jonathan/resumeace/internal/types"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	name := r.PathValue("format")
	format, err := export.ParseFormat(name)
	if err != nil {
		s.fail(w, r, &ErrNotFound{Resource: "format", ID: name})
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		title = mode.Title()
	}
	content, _ := s.snapshot(mode)
	artifact, err := s.exporter.Export(r.Context(), content, title, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	var mode types.Mode
	if name := r.URL.Query().Get("mode"); name != "" {
		parsed, err := types.ParseMode(name)
		if err != nil {
			s.fail(w, r, &ErrValidation{Field: "mode", Message: err.Error()})
			return
		}
		mode = parsed
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": templates.List(mode)})
}

// handleApplyTemplate replaces the document with a starter template of the same mode
func (s *Server) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id := r.PathValue("id")
	tmpl, ok := templates.Lookup(id)
	if !ok {
		s.fail(w, r, &ErrNotFound{Resource: "template", ID: id})
		return
	}
	if tmpl.Mode != mode {
		s.fail(w, r, &ErrValidation{Field: "template", Message: fmt.Sprintf("%s is a %s template", id, tmpl.Mode)})
		return
	}
	content, err := templates.Get(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buffer.Replace(mode, content); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.documentLocked(mode))
}
