package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resumeace/internal/editor"
	"github.com/jonathan/resumeace/internal/ingestion"
	"github.com/jonathan/resumeace/internal/types"
)

// DocumentResponse is the JSON view of one document
type DocumentResponse struct {
	Mode     types.Mode      `json:"mode"`
	Content  string          `json:"content"`
	Version  uint64          `json:"version"`
	Dirty    bool            `json:"dirty"`
	Sections []types.Section `json:"sections"`
}

// SectionResponse is returned when a section is inserted
type SectionResponse struct {
	ID       string           `json:"id"`
	Document DocumentResponse `json:"document"`
}

type putDocumentRequest struct {
	Content *string `json:"content"`
}

type insertSectionRequest struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	After string `json:"after,omitempty"`
	At    string `json:"at,omitempty"` // "start" or "end" (default)
}

type replaceSectionRequest struct {
	Text string `json:"text"`
}

type moveSectionRequest struct {
	Index *int `json:"index"`
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func pathMode(r *http.Request) (types.Mode, error) {
	name := r.PathValue("mode")
	mode, err := types.ParseMode(name)
	if err != nil {
		return "", &ErrNotFound{Resource: "mode", ID: name}
	}
	return mode, nil
}

// documentLocked builds the response for mode. s.mu must be held.
func (s *Server) documentLocked(mode types.Mode) DocumentResponse {
	doc := s.buffer.Document(mode)
	return DocumentResponse{
		Mode:     mode,
		Content:  doc.Serialize(),
		Version:  doc.Version(),
		Dirty:    s.buffer.Dirty(mode),
		Sections: doc.Sections(),
	}
}

// snapshot returns the text and version of mode
func (s *Server) snapshot(mode types.Mode) (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.buffer.Document(mode)
	return doc.Serialize(), doc.Version()
}

// commit replaces mode with text unless the document moved past version since
// the snapshot was taken
func (s *Server) commit(mode types.Mode, version uint64, text string) (DocumentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer.Document(mode).Version() != version {
		return DocumentResponse{}, &ErrConflict{Message: "document was edited while the request was running"}
	}
	if err := s.buffer.Replace(mode, text); err != nil {
		return DocumentResponse{}, err
	}
	return s.documentLocked(mode), nil
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.mu.Lock()
	resp := s.documentLocked(mode)
	s.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req putDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Content == nil {
		s.fail(w, r, &ErrValidation{Field: "content", Message: "required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buffer.Replace(mode, *req.Content); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.documentLocked(mode))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	content, _ := s.snapshot(mode)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, s.exporter.Page(content, mode.Title()))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buffer.SaveMode(r.Context(), mode); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.documentLocked(mode))
}

// handleImport replaces the document with an uploaded file. The raw file is the
// request body and its name comes from the filename query parameter.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		s.fail(w, r, &ErrValidation{Field: "filename", Message: "required"})
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, ingestion.MaxImportBytes+1))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	text, err := ingestion.Import(filename, data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buffer.Replace(mode, text); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.documentLocked(mode))
}

// handlePhoto inserts an uploaded image as a photo section at the top of the document
func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, ingestion.MaxImportBytes+1))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	src, err := ingestion.PhotoDataURL(r.URL.Query().Get("filename"), data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := s.buffer.Document(mode).Insert(editor.AtStart, types.KindImage, src)
	s.jsonResponse(w, http.StatusCreated, SectionResponse{ID: id, Document: s.documentLocked(mode)})
}

func (s *Server) handleInsertSection(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req insertSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	kind, err := types.ParseSectionKind(req.Kind)
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "kind", Message: err.Error()})
		return
	}

	pos := editor.AtEnd
	switch {
	case req.After != "":
		pos = editor.After(req.After)
	case req.At == "start":
		pos = editor.AtStart
	case req.At != "" && req.At != "end":
		s.fail(w, r, &ErrValidation{Field: "at", Message: `must be "start" or "end"`})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.buffer.Document(mode).Insert(pos, kind, req.Text)
	if !ok {
		s.fail(w, r, &ErrNotFound{Resource: "section", ID: req.After})
		return
	}
	s.jsonResponse(w, http.StatusCreated, SectionResponse{ID: id, Document: s.documentLocked(mode)})
}

func (s *Server) handleReplaceSection(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req replaceSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.buffer.Document(mode).Replace(id, req.Text) {
		s.fail(w, r, &ErrNotFound{Resource: "section", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.documentLocked(mode))
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.buffer.Document(mode).Delete(id) {
		s.fail(w, r, &ErrNotFound{Resource: "section", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.documentLocked(mode))
}

func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req moveSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Index == nil {
		s.fail(w, r, &ErrValidation{Field: "index", Message: "required"})
		return
	}

	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.buffer.Document(mode).Move(id, *req.Index) {
		s.fail(w, r, &ErrNotFound{Resource: "section", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.documentLocked(mode))
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	mode, err := pathMode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buffer.Document(mode).Reorder(req.IDs); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.documentLocked(mode))
}
