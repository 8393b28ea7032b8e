package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gedtools/gedserve/internal/gedcom"
	"github.com/gedtools/gedserve/internal/parser"
	"github.com/gedtools/gedserve/internal/registry"
	"github.com/go-chi/chi/v5"
)

// handleUpload accepts a multipart .ged upload, parses it, and stores the
// result. With strict=true any parse warning rejects the upload. A
// re-upload of identical content returns the existing entry unless
// force=true.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".ged" && ext != ".gedcom" {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	if r.FormValue("force") != "true" {
		if existing := s.store.FindByHash(registry.ContentHashHex(data)); existing != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"document":  existing.Snapshot(),
				"duplicate": true,
			})
			return
		}
	}

	decoded, encName, err := parser.Decode(data)
	if err != nil {
		jsonError(w, "failed to decode file: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	doc, warnings, err := parser.Parse(bytes.NewReader(decoded))
	if err != nil {
		jsonError(w, "failed to parse file: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if r.FormValue("strict") == "true" && len(warnings) > 0 {
		err := &parser.MalformedError{Warnings: warnings}
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if doc.Len() == 0 {
		jsonError(w, parser.ErrNothingParsed.Error(), http.StatusUnprocessableEntity)
		return
	}

	entry := s.store.Add(filename, data, encName, doc, warnings)
	s.log.Info("document stored",
		"id", entry.ID,
		"name", entry.Name,
		"records", doc.Len(),
		"warnings", len(warnings),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"document": entry.Snapshot()})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	entries := s.store.List()
	docs := make([]registry.Snapshot, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, entry.Snapshot())
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	entry := s.entry(w, r)
	if entry == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"document": entry.Snapshot()})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.store.Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

// handleDocumentSource re-renders the parsed document as GEDCOM text.
func (s *Server) handleDocumentSource(w http.ResponseWriter, r *http.Request) {
	entry := s.entry(w, r)
	if entry == nil {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	entry.Doc.WriteSource(w)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	entry := s.entry(w, r)
	if entry == nil {
		return
	}
	xref := chi.URLParam(r, "xref")
	rec := entry.Doc.Record(xref)
	if !rec.Exists() {
		jsonError(w, "record not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"record": recordView(rec),
		"source": rec.Source(),
	})
}

// entry resolves the docID route parameter, writing a 404 and returning
// nil when it is unknown.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) *registry.Entry {
	docID := chi.URLParam(r, "docID")
	entry := s.store.Get(docID)
	if entry == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return nil
	}
	return entry
}

// recordView is the nested JSON rendering of one line and its sub-lines.
func recordView(line *gedcom.Line) map[string]any {
	view := map[string]any{
		"level": line.Level,
		"tag":   line.Tag,
	}
	if line.Payload != "" {
		view["payload"] = line.Payload
	}
	if len(line.SubLines) > 0 {
		subs := make([]map[string]any, 0, len(line.SubLines))
		for _, sub := range line.SubLines {
			subs = append(subs, recordView(sub))
		}
		view["sub_lines"] = subs
	}
	return view
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
