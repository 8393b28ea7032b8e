package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gedtools/gedserve/internal/gedcom"
	"github.com/gedtools/gedserve/internal/registry"
	"github.com/go-chi/chi/v5"
)

// personView is the JSON rendering of one individual in kinship results.
type personView struct {
	XRef      string `json:"xref"`
	Name      string `json:"name,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

func newPersonView(xref string, rec *gedcom.Line) personView {
	view := personView{XRef: xref}
	if rec.Exists() {
		view.Name = gedcom.FormatName(rec.SubPayload("NAME"))
		view.BirthDate = gedcom.FormatDate(rec.Sub("BIRT").SubPayload("DATE"))
	}
	return view
}

// individual resolves the docID and xref route parameters. A missing
// document or individual writes the error response and returns nil.
func (s *Server) individual(w http.ResponseWriter, r *http.Request) (*registry.Entry, string) {
	entry := s.entry(w, r)
	if entry == nil {
		return nil, ""
	}
	xref := chi.URLParam(r, "xref")
	rec := entry.Doc.Record(xref)
	if !rec.Exists() || rec.Payload != "INDI" {
		jsonError(w, "individual not found", http.StatusNotFound)
		return nil, ""
	}
	return entry, xref
}

func (s *Server) writePersons(w http.ResponseWriter, entry *registry.Entry, refs []string) {
	persons := make([]personView, 0, len(refs))
	for _, ref := range refs {
		persons = append(persons, newPersonView(ref, entry.Doc.Record(ref)))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"individuals": persons})
}

func (s *Server) handleParents(w http.ResponseWriter, r *http.Request) {
	entry, xref := s.individual(w, r)
	if entry == nil {
		return
	}
	father, mother := entry.Links.Parents(xref)
	resp := map[string]any{}
	if father.Exists() {
		resp["father"] = newPersonView(father.Tag, father)
	}
	if mother.Exists() {
		resp["mother"] = newPersonView(mother.Tag, mother)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	entry, xref := s.individual(w, r)
	if entry == nil {
		return
	}
	if with := r.URL.Query().Get("with"); with != "" {
		s.writePersons(w, entry, entry.Links.ChildRefsWith(xref, with))
		return
	}
	s.writePersons(w, entry, entry.Links.ChildRefs(xref))
}

func (s *Server) handleSpouses(w http.ResponseWriter, r *http.Request) {
	entry, xref := s.individual(w, r)
	if entry == nil {
		return
	}
	s.writePersons(w, entry, entry.Links.SpouseRefs(xref))
}

func (s *Server) handleSiblings(w http.ResponseWriter, r *http.Request) {
	entry, xref := s.individual(w, r)
	if entry == nil {
		return
	}
	s.writePersons(w, entry, entry.Links.SiblingRefs(xref))
}

func (s *Server) handleStepsiblings(w http.ResponseWriter, r *http.Request) {
	entry, xref := s.individual(w, r)
	if entry == nil {
		return
	}
	s.writePersons(w, entry, entry.Links.StepsiblingRefs(xref))
}

func (s *Server) handleAllSiblings(w http.ResponseWriter, r *http.Request) {
	entry, xref := s.individual(w, r)
	if entry == nil {
		return
	}
	s.writePersons(w, entry, entry.Links.AllSiblingRefs(xref))
}

// handleRelatives answers generation/collateral queries, e.g.
// ?generations=1&collateral=1 for uncles and aunts.
func (s *Server) handleRelatives(w http.ResponseWriter, r *http.Request) {
	entry, xref := s.individual(w, r)
	if entry == nil {
		return
	}
	generations, err := queryInt(r, "generations", 0)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	collateral, err := queryInt(r, "collateral", 0)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if collateral < 0 {
		jsonError(w, "collateral must not be negative", http.StatusBadRequest)
		return
	}
	max := s.cfg.MaxTraversalDepth
	if generations > max || -generations > max || collateral > max {
		jsonError(w, fmt.Sprintf("traversal depth exceeds limit (%d)", max), http.StatusBadRequest)
		return
	}
	s.writePersons(w, entry, entry.Links.RelativeRefs(xref, generations, collateral))
}

func (s *Server) handleByDegree(w http.ResponseWriter, r *http.Request) {
	entry, xref := s.individual(w, r)
	if entry == nil {
		return
	}
	degree, err := strconv.Atoi(chi.URLParam(r, "degree"))
	if err != nil || degree < 0 {
		jsonError(w, "degree must be a non-negative integer", http.StatusBadRequest)
		return
	}
	if degree > s.cfg.MaxTraversalDepth {
		jsonError(w, fmt.Sprintf("traversal depth exceeds limit (%d)", s.cfg.MaxTraversalDepth), http.StatusBadRequest)
		return
	}
	s.writePersons(w, entry, entry.Links.ByDegreeRefs(xref, degree))
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
