// Package stats computes aggregate figures over a parsed genealogy
// document: record counts, tag usage, structural depth, surname and
// birth-year distributions.
package stats

import (
	"sort"
	"strings"

	"github.com/gedtools/gedserve/internal/gedcom"
)

// TagPathCount is the usage count of one slash-joined tag path, e.g.
// "INDI/BIRT/DATE".
type TagPathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// SurnameCount is the number of individuals carrying one surname.
type SurnameCount struct {
	Surname string `json:"surname"`
	Count   int    `json:"count"`
}

// Snapshot is a point-in-time aggregate over one document.
type Snapshot struct {
	Records         int            `json:"records"`
	Individuals     int            `json:"individuals"`
	Families        int            `json:"families"`
	RecordsByType   map[string]int `json:"records_by_type"`
	AvgLinesPerIndi float64        `json:"avg_lines_per_indi"`
	MaxDepth        int            `json:"max_depth"`
	TagPaths        []TagPathCount `json:"tag_paths"`
	Surnames        []SurnameCount `json:"surnames"`
	EarliestBirth   int            `json:"earliest_birth,omitempty"`
	LatestBirth     int            `json:"latest_birth,omitempty"`
}

// Compute walks the whole document once per concern and returns the
// aggregate. The header, trailer and submitter records are left out of
// the tag-path counts, matching how researchers read these figures.
func Compute(doc *gedcom.Document) Snapshot {
	snap := Snapshot{RecordsByType: make(map[string]int)}

	for _, rec := range doc.Records() {
		snap.Records++
		key := rec.Payload
		if key == "" {
			key = rec.Tag
		}
		snap.RecordsByType[key]++
	}
	snap.Individuals = snap.RecordsByType["INDI"]
	snap.Families = snap.RecordsByType["FAM"]

	if snap.Individuals > 0 {
		total := 0
		for _, indi := range doc.RecordsOfType("INDI") {
			total += len(indi.AllSubLines())
		}
		snap.AvgLinesPerIndi = float64(total) / float64(snap.Individuals)
	}

	pathCounts := make(map[string]int)
	doc.Walk(func(path []*gedcom.Line) {
		if depth := len(path); depth > snap.MaxDepth {
			snap.MaxDepth = depth
		}
		root := path[0]
		if root.Tag == "HEAD" || root.Tag == "TRLR" || root.Payload == "SUBM" {
			return
		}
		fields := strings.Fields(root.Payload)
		if len(fields) == 0 {
			return
		}
		parts := make([]string, 0, len(path))
		// Records are keyed by their type, sub-lines by their tag.
		parts = append(parts, fields[0])
		for _, line := range path[1:] {
			parts = append(parts, line.Tag)
		}
		pathCounts[strings.Join(parts, "/")]++
	})
	snap.TagPaths = sortedTagPaths(pathCounts)

	surnameCounts := make(map[string]int)
	for _, indi := range doc.RecordsOfType("INDI") {
		_, surname := gedcom.SplitName(indi.SubPayload("NAME"))
		if surname != "" {
			surnameCounts[surname]++
		}
		year := gedcom.BirthYear(indi)
		if year == gedcom.MinimalYear {
			continue
		}
		y := int(year)
		if snap.EarliestBirth == 0 || y < snap.EarliestBirth {
			snap.EarliestBirth = y
		}
		if y > snap.LatestBirth {
			snap.LatestBirth = y
		}
	}
	snap.Surnames = sortedSurnames(surnameCounts)

	return snap
}

func sortedTagPaths(counts map[string]int) []TagPathCount {
	out := make([]TagPathCount, 0, len(counts))
	for path, count := range counts {
		out = append(out, TagPathCount{Path: path, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func sortedSurnames(counts map[string]int) []SurnameCount {
	out := make([]SurnameCount, 0, len(counts))
	for surname, count := range counts {
		out = append(out, SurnameCount{Surname: surname, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Surname < out[j].Surname
	})
	return out
}
