package api

import (
	"encoding/json"
	"net/http"

	"github.com/gedtools/gedserve/internal/stats"
)

func (s *Server) handleDocumentStats(w http.ResponseWriter, r *http.Request) {
	entry := s.entry(w, r)
	if entry == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"document_id": entry.ID,
		"stats":       stats.Compute(entry.Doc),
	})
}
