// Package registry holds parsed documents in memory for the HTTP API.
// Entries are immutable once stored; mutating a document through the API
// means re-uploading it.
package registry

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gedtools/gedserve/internal/familylink"
	"github.com/gedtools/gedserve/internal/gedcom"
	"github.com/gedtools/gedserve/internal/parser"
)

// Entry is one uploaded document with its parse artifacts.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int       `json:"size"`
	ContentHash string    `json:"content_hash"`
	Encoding    string    `json:"encoding,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Doc      *gedcom.Document       `json:"-"`
	Warnings []parser.Warning       `json:"-"`
	Links    *familylink.FamilyLink `json:"-"`
}

// Snapshot is the JSON-safe listing view of an entry.
type Snapshot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int       `json:"size"`
	ContentHash string    `json:"content_hash"`
	Encoding    string    `json:"encoding,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Records     int       `json:"records"`
	Warnings    []string  `json:"warnings"`
}

// Snapshot returns the listing view of the entry.
func (e *Entry) Snapshot() Snapshot {
	warnings := make([]string, 0, len(e.Warnings))
	for _, w := range e.Warnings {
		warnings = append(warnings, w.Warning())
	}
	return Snapshot{
		ID:          e.ID,
		Name:        e.Name,
		Size:        e.Size,
		ContentHash: e.ContentHash,
		Encoding:    e.Encoding,
		CreatedAt:   e.CreatedAt,
		Records:     e.Doc.Len(),
		Warnings:    warnings,
	}
}

// Store is a thread-safe in-memory document registry with TTL eviction.
// A zero TTL disables eviction.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	ttl     time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*Entry),
		ttl:     ttl,
	}
}

// Add stores the parse artifacts under a fresh identifier and returns the
// entry.
func (s *Store) Add(name string, data []byte, encoding string, doc *gedcom.Document, warnings []parser.Warning) *Entry {
	entry := &Entry{
		ID:          NewID(),
		Name:        name,
		Size:        len(data),
		ContentHash: ContentHashHex(data),
		Encoding:    encoding,
		CreatedAt:   time.Now(),
		Doc:         doc,
		Warnings:    warnings,
		Links:       familylink.New(doc),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return entry
}

func (s *Store) Get(id string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[id]
}

// FindByHash returns the entry holding identical content, or nil.
func (s *Store) FindByHash(hash string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.ContentHash == hash {
			return entry
		}
	}
	return nil
}

// Delete removes the entry and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	return ok
}

// List returns every entry ordered by identifier, which for ULIDs is
// upload order.
func (s *Store) List() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup removes expired entries. No-op when the TTL is zero.
func (s *Store) Cleanup() {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, entry := range s.entries {
		if now.Sub(entry.CreatedAt) > s.ttl {
			delete(s.entries, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns the hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
